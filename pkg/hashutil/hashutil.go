package hashutil

import (
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// HashBytes returns the hex digest of data using the given algorithm.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoBLAKE3:
		sum := blake3.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// HashString is HashBytes for string keys such as URLs.
func HashString(s string, algo HashAlgo) (string, error) {
	return HashBytes([]byte(s), algo)
}
