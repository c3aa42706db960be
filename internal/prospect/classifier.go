// Package prospect decides whether an extraction represents a business
// entity not yet present in the known-identity reference set.
package prospect

import (
	"github.com/auditpack/auditpack/internal/cnpj"
	"github.com/auditpack/auditpack/internal/entity"
)

// Classify reports whether the extraction is a new prospect. An extraction
// is known when any of its tax IDs normalizes to a member of knownRoots;
// matching is by organizational root, never by full tax-ID string. An empty
// tax-ID sequence classifies as new: absence of evidence is novelty.
//
// Total function: degraded inputs (malformed IDs, nil sets) never fail.
func Classify(x entity.ExtractedData, knownRoots map[string]struct{}) bool {
	for _, root := range cnpj.Roots(x.CNPJ) {
		if _, known := knownRoots[root]; known {
			return false
		}
	}
	return true
}

// ReferenceSet normalizes a static reference list of CNPJs (or bare roots)
// into a root set suitable for Classify. Entries that yield no root are
// dropped.
func ReferenceSet(refs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(refs))
	for _, root := range cnpj.Roots(refs) {
		set[root] = struct{}{}
	}
	return set
}
