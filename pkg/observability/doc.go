/*
Package observability provides lifecycle hooks for monitoring conversations.

Metrics records every step of a form as Prometheus counters and LogHooks writes
the same steps as structured log records. Both return domain.LifecycleHooks,
which can be combined with Merge and passed to aiforms.WithLifecycleHooks.
*/
package observability
