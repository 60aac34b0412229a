/*
Package session hosts live form conversations for multi-user front-ends.

A Manager keeps a bounded, least-recently-used set of sessions in memory, each
identified by a random UUID. Forms are not safe for concurrent use, so callers
that share sessions across goroutines (HTTP handlers, MCP tools) must go
through WithLock, which serializes access per session and garbage collects
its locks by reference counting.
*/
package session
