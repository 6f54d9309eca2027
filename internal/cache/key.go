package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key identifies one audio artifact. Two keys with the same fields always
// resolve to the same cached file; distinct keys never collide.
// Instructions carries the actual reading-instruction text rather than a
// language name, so changing an instruction re-synthesizes.
type Key struct {
	Text         string
	Voice        string
	Instructions string
}

// ID returns the stable identifier the key's cache file is named after.
// Fields are length-prefixed before hashing so no two distinct tuples
// can produce the same digest input.
func (k Key) ID() string {
	data := fmt.Sprintf("%d:%s|%d:%s|%d:%s",
		len(k.Text), k.Text, len(k.Voice), k.Voice, len(k.Instructions), k.Instructions)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:16]) // first 16 bytes keep names short
}
