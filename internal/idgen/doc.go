// Package idgen produces the identifiers attached to parties, run records
// and queue messages. It lives under `internal` because callers should not
// rely on the exact format – identifiers are opaque strings.
package idgen
