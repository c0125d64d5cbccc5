/*
Package observe is a collection of in-process observable values and containers that notify subscribed handlers when they change.

Everything is built on the notification engine in package notify, and the packages are laid out by what they provide:
  - patterns/observer has Subject, a single observable value.
  - patterns/eventbus has Bus, a multiplexer of typed topics.
  - structures/observmap has Map, an insertion-ordered observable map.
  - structures/set has Set for plain set algebra, and Observable for a set that publishes changes.
  - structures/registry has Registry, an observable map with presence rules.

Handler failures never reach the code that caused a change.
They're delivered to error handlers, or to the diagnostic logger in package diag when there are none.
*/
package observe
