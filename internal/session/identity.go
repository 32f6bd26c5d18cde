package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the content hash of a document: the hex SHA-256 digest of
// its raw bytes. Two files with identical bytes are the same document no
// matter their names; the same name re-uploaded with different bytes is a
// different document.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DiffHashes compares the registered hash set against the hashes present in
// the current upload batch. removed holds registered hashes absent from the
// batch (their documents were deselected and must be evicted); added holds
// batch hashes not yet registered. Pure function of its inputs.
func DiffHashes(registered map[string]struct{}, current map[string]struct{}) (removed, added []string) {
	for h := range registered {
		if _, ok := current[h]; !ok {
			removed = append(removed, h)
		}
	}
	for h := range current {
		if _, ok := registered[h]; !ok {
			added = append(added, h)
		}
	}
	return removed, added
}
