package bucketmgr

import (
	"strings"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// isDuplicate reports whether value already matches an existing entry for
// id, checking every entry for a multi-value bucket and the sole entry for
// a single-value one.
func isDuplicate(id bucket.ID, value string, store *convstate.Store) bool {
	vals, ok := store.GetValue(id)
	if !ok {
		return false
	}
	for _, v := range vals {
		if valuesSimilar(v.String(), value) {
			return true
		}
	}
	return false
}

// valuesSimilar mirrors BucketManager._values_similar: exact match, then
// case-insensitive equality, then substring containment in either
// direction. This deliberately over-matches (a genuinely new value that
// happens to contain an old one is treated as a duplicate) in favor of
// not re-asking the user for something already on file.
func valuesSimilar(existing, candidate string) bool {
	if existing == candidate {
		return true
	}
	norm1 := strings.ToLower(strings.TrimSpace(existing))
	norm2 := strings.ToLower(strings.TrimSpace(candidate))
	if norm1 == norm2 {
		return true
	}
	if norm1 == "" || norm2 == "" {
		return false
	}
	return strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1)
}
