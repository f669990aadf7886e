// Package digest computes the content identifiers used by the object store.
//
// Identifiers are the SHA-1 of the raw bytes rendered as 40 lowercase hex
// characters. The hash itself comes from go-multihash; the multihash
// envelope (code + length prefix) is stripped so identifiers stay plain hex
// on disk.
package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/multiformats/go-multihash"
)

// Size is the length of a hex-encoded identifier.
const Size = 40

// ShardLen is the number of leading characters used as the shard directory.
const ShardLen = 2

// Sum returns the hex identifier of data.
func Sum(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA1, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("decode multihash: %w", err)
	}
	return hex.EncodeToString(decoded.Digest), nil
}

// IsFull reports whether s is a complete identifier.
func IsFull(s string) bool {
	return len(s) == Size && IsHex(s)
}

// IsHex reports whether s is a non-empty string of lowercase hex characters.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Split returns the shard directory and file name for a full identifier.
func Split(s string) (shard, rest string) {
	if len(s) <= ShardLen {
		return s, ""
	}
	return s[:ShardLen], s[ShardLen:]
}
