// Package value bridges untyped host values, remote script literals and JSON.
//
// A Value is a closed variant: number, string, bool, null, sequence or
// mapping. Mappings keep insertion order so envelopes re-encode with their
// keys where the remote engine put them.
//
// Encodings:
//   - EncodeLiteral: script literal injected into a program preamble
//   - EncodeDisplay: plain text or compact JSON for rendering
//
// Decoding goes through Parse, which tries array, then object, then leaves
// the text opaque. DecodeNested applies Parse recursively so JSON carried
// inside strings comes back as structure.
//
// Example Usage:
//
//	lit, err := value.EncodeLiteral(value.Sequence(value.Int(1), value.Int(2)))
//	// lit == `'[1,2]' JSON->`
//	v := value.DecodeText(`{"gts":[1,2,3]}`)
package value
