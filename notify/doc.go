/*
Package notify provides the in-process notification engine used by every observable container in this module.

A [Broadcaster] owns three collections of handlers: persistent handlers, one-shot handlers, and error handlers.
Each is kept in subscription order, and subscription order is invocation order.

# Handlers

A [Handler] is called synchronously and reports failure by returning an error (or panicking).
An [AsyncHandler] may start asynchronous work and return a [syncx.Future] that settles when the work is done.
Use [Async] to run a function on its own goroutine as an AsyncHandler.

Every Subscribe method returns a [Subscription], which is the handle used to remove the handler again.

# Emitting

[Broadcaster.Emit] calls every persistent handler, then every one-shot handler, and returns the number of handlers invoked.
It doesn't wait for asynchronous work; failures in that work are routed whenever they happen.

[Broadcaster.EmitWait] invokes handlers the same way, then blocks until all asynchronous work started by that call has settled.
It's a join barrier for its own pass only, it doesn't wait for work started by other emits.

Both methods take a snapshot of the handlers at the start of a pass.
Handlers subscribed during a pass won't fire in it, but handlers unsubscribed during a pass won't fire after being removed.

One-shot handlers are removed before they're invoked, so a one-shot handler fires at most once even if emits overlap.

# Errors

Handler failures never propagate to the emitter.
A failing handler is reported as a [HandlerError], a failed asynchronous task as a [RejectionError].
Both are delivered to every error handler added with [Broadcaster.SubscribeError].
If there are no error handlers, or an error handler panics, the error is sent to the diagnostic sink in package diag.

# Concurrency

A Broadcaster is safe for concurrent use.
Nothing serializes overlapping emits, so handlers of two concurrent emits may interleave.
Callers that need ordered delivery should serialize their own mutations.

[syncx.Future]: github.com/saylorsolutions/observe/syncx
*/
package notify
