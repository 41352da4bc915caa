// Package imagekey reduces differently-decorated references to the same
// underlying picture into one comparable identity. The storefront appends an
// opaque asset id ("_<uuid>") to filenames it stores; the supplier embeds a
// long hex content hash. Byte comparison is infeasible because both systems
// re-encode images, so equality is decided on the normalized filename stem.
package imagekey

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// Resolve returns the canonical key for an image reference. ok is false for
// blank input; callers must treat that as "never matches". The function is
// pure and idempotent: resolving a rendered key yields the same key.
func Resolve(ref string) (key string, ok bool) {
	s := strings.TrimSpace(ref)
	if s == "" {
		return "", false
	}

	// last path segment, query/fragment dropped
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return "", false
	}

	s = strings.ToLower(s)
	ext := path.Ext(s)
	stem := strings.TrimSuffix(s, ext)
	if ext == ".jpeg" {
		ext = ".jpg"
	}

	tokens := strings.Split(stem, "_")
	kept := tokens[:0]
	for _, token := range tokens {
		if isAssetID(token) || isContentHash(token) {
			continue
		}
		kept = append(kept, token)
	}
	cleaned := strings.Trim(strings.Join(kept, "_"), "_")
	if cleaned == "" {
		// a stem that is nothing but decoration keeps its original form,
		// otherwise every such file would collide on the bare extension
		cleaned = stem
	}
	return cleaned + ext, true
}

// Equal reports whether two references point at the same picture.
func Equal(a, b string) bool {
	ka, oka := Resolve(a)
	kb, okb := Resolve(b)
	return oka && okb && ka == kb
}

// isAssetID matches the storefront-assigned 8-4-4-4-12 identifier.
func isAssetID(token string) bool {
	if len(token) != 36 {
		return false
	}
	_, err := uuid.Parse(token)
	return err == nil
}

// isContentHash matches the supplier-assigned hash: 32+ hex characters.
func isContentHash(token string) bool {
	if len(token) < 32 {
		return false
	}
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
