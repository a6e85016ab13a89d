// Package abi defines the closed set of value kinds exchanged with the native
// cryptography module and their bit-exact wire encodings.
//
// Every kind has exactly one host representation and one wire rule:
//
//	field element (Fr, Fq)   32 bytes
//	curve point              64 bytes, x then y
//	fixed 32 / 128 buffers   32 / 128 bytes
//	boolean                  1 byte, nonzero decodes as true
//	unsigned 32-bit integer  4 bytes, big-endian
//	byte buffer              4-byte big-endian length, then the payload
//	vector of K              4-byte big-endian element count, then each element
//
// The same table backs the wire-type catalog used at generation time and the
// codec used at call time.
package abi
