// package store holds the in-memory contact list and mediates every change to it.
//
// A [Store] owns its state through a single goroutine. Reads and the completion of each remote
// call are submitted to that goroutine in order, so concurrent operations apply by completion
// order without locks held across network I/O.
//
// Only the initial fetch ([Store.Load]) is cancellable; it ends silently when its context or the
// store is cancelled. Mutations run to completion. Failures are returned as [*OpError] and also
// handed to the configured [Notifier].
package store
