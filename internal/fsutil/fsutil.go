package fsutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// binarySniffLen is how much of a file IsBinary inspects.
const binarySniffLen = 8000

// HashBytes computes the SHA-256 hash of the provided bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IsBinary reports whether content looks like binary data: a NUL byte in
// the first few kilobytes, the same heuristic git uses.
func IsBinary(content []byte) bool {
	if len(content) > binarySniffLen {
		content = content[:binarySniffLen]
	}
	return bytes.IndexByte(content, 0) >= 0
}
