// Package task runs background maintenance work that must not block HTTP
// request handling. Currently that is the session janitor, which evicts
// sessions that have been idle longer than the configured TTL.
package task
