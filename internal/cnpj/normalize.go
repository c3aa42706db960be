// Package cnpj canonicalizes Brazilian tax IDs into their organizational
// root, the stable prefix shared by every branch of one legal entity.
package cnpj

import "strings"

// RootLength is the number of leading digits that identify the organization;
// the remaining digits identify the branch and the check pair.
const RootLength = 8

// Root strips punctuation from a raw CNPJ and returns its first eight
// digits. Inputs with fewer than eight digits degrade to the empty string;
// Root never fails.
func Root(raw string) string {
	var b strings.Builder
	b.Grow(RootLength)
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == RootLength {
			return b.String()
		}
	}
	return ""
}

// FirstRoot returns the root of the first tax ID in the sequence, or the
// empty string when the sequence is empty.
func FirstRoot(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return Root(ids[0])
}

// Roots returns the distinct non-empty roots of the sequence, preserving
// first-seen order.
func Roots(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		root := Root(id)
		if root == "" {
			continue
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}
	return out
}
