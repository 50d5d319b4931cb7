// Package packet decodes and encodes BITS packet trees.
//
// A packet starts with a 3-bit version and a 3-bit type id. Type 4 is a
// literal whose value is a run of 5-bit groups (continuation flag + nibble).
// Every other type is an operator whose children are framed either by a
// 15-bit total bit length or by an 11-bit child count.
package packet
