/*
Package session implements conversion history orchestration.

The Recorder wraps a converter so that every successful conversion is appended
to a history store. Appends are serialized locally with a mutex and, when a
distributed locker is configured, across replicas sharing the same backend.
*/
package session
