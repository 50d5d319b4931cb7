// Package bits owns the bit-level storage primitives of a transmission.
//
// Ownership boundary:
// - hex text to 32-bit word packing
// - MSB-first read cursor over packed words
// - MSB-first writer producing packed words
package bits
