// Package protocol owns the message codec.
//
// Ownership boundary:
// - the closed set of message variants and their tag table
// - message <-> flat byte buffer encoding ([tag] ++ tlv payload)
// - payload validation entry points (schema)
//
// Fragmentation of the encoded buffer lives in the fragment subpackage and
// knows nothing about message semantics.
package protocol
