/*
Package observability provides monitoring for the WorldForge engine.

It turns engine lifecycle hooks into Prometheus metrics and structured log
records. Both are plain domain.LifecycleHooks values and can be combined with
LifecycleHooks.Merge.
*/
package observability
