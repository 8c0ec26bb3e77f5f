// Package fragment splits a flat byte buffer into fixed-capacity fragments
// and joins a received fragment set back into the buffer.
//
// Capacity is fixed at 128 bytes, the data size of a transport fragment. An empty
// buffer splits into a single fragment of length 0.
package fragment
