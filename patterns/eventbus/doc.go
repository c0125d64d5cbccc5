/*
Package eventbus provides a topic multiplexer that allows loose coupling between the parts of an application that produce events and the parts that react to them.

# Design Priorities

  - It should be type safe, so a handler always receives the payload type it was written for.
  - It should be transparent in its results by routing handler failures to error handlers registered for the topic.
  - It should be simple in its operations, so delivery happens in the emitting goroutine unless a handler chooses otherwise.

# Bus Primitives

A [Bus] holds one [notify.Broadcaster] per topic name.
The payload type of a topic is fixed by whichever call creates it, and using the topic with a different type fails with [ErrTopicType].

Handlers are added with the generic functions [Subscribe], [SubscribeAsync], [SubscribeOnce], and [SubscribeError].
Each returns a [notify.Subscription] that removes the handler again.

# Bus Initialization

There are two distinct ways to initialize a [Bus]:
  - Use the [Instance] function to get a global singleton [Bus], which may be configured once with [InitInstance].
  - Use the [NewBus] function to get an instance.

By default, a topic is created the first time something subscribes to it.
Passing [DeclareTopics] to [NewBus] fixes the set of topics instead, and any other topic name fails with [ErrUnknownTopic].
Declaring the same name twice is a configuration error that makes [NewBus] panic.

# Event Flow

[Emit] delivers a payload to every handler of a topic in subscription order, and returns the number of handlers that were invoked.
Emitting on a topic that nothing has subscribed to is not an error, the payload is just dropped.

[EmitWait] does the same, and then blocks until every asynchronous handler it invoked has settled.

[notify.Broadcaster]: github.com/saylorsolutions/observe/notify
[notify.Subscription]: github.com/saylorsolutions/observe/notify
*/
package eventbus
