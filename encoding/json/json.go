// Package json provides JSON field types for byte strings that belong
// on the wire as hex rather than base64.
package json

import (
	"encoding/hex"
)

// HexBytes is a []byte that marshals as a hex string in JSON.
type HexBytes []byte

// MarshalText satisfies the TextMarshaler interface.
func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

// UnmarshalText satisfies the TextUnmarshaler interface.
func (h *HexBytes) UnmarshalText(text []byte) error {
	n := hex.DecodedLen(len(text))
	*h = make([]byte, n)
	_, err := hex.Decode(*h, text)
	return err
}
