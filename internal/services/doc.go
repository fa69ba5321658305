// Package services defines the [ContactService] interface for the remote contacts resource and implements it
// for JSONPlaceholder-style /users APIs.
//
// # Transport
//
// [APIService] is the raw HTTP layer: it resolves paths against a base URL, applies an optional
// client-side rate limit (golang.org/x/time/rate) and returns an [APIResponse] without judging the status.
// The `rolodex api` commands use it directly.
//
// # Contacts
//
// [PlaceholderService] maps the four operations onto the resource:
//
//	GET    /users       list
//	POST   /users       create (JSON fields)
//	PATCH  /users/{id}  update (JSON partial fields)
//	DELETE /users/{id}  delete
//
// # Normalization
//
// List items arrive as [RemoteUser] and are converted with [NormalizeUser]: the company object collapses
// to its name, the address object to "<street>, <city> <zipcode>", and absent objects become nil.
//
// # Error Handling
//
//   - [StatusError] : non-success status, matches [shared.ErrAPIRequest]
//   - transport failures wrap [shared.ErrAPIRequest] and the underlying error, so
//     errors.Is(err, context.Canceled) still holds for cancelled requests
//
// No retries are attempted and no timeout is imposed beyond the http.Client's own.
package services
