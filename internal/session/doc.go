// Package session provides the durable log of workbench evaluations.
//
// Each live demo is a session, identified by a time-sortable UUIDv7
// token. Every evaluation performed under a session is appended to a
// SQLite log: the source expression, the result (or domain error
// code), and a monotonic sequence number. Reads are deterministically
// ordered, writes are idempotent, and Replay re-evaluates the recorded
// inputs to verify the log still matches what the evaluator produces.
package session
