// Package server provides HTTP routing, middleware, and a local stand-in for the remote contacts API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Users Handler
//
// [UsersHandler] serves a JSONPlaceholder-compatible /users resource from memory. It is what
// `rolodex serve` runs, and what integration tests point the client at. Writes persist for the
// lifetime of the handler, unlike the public instance.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
