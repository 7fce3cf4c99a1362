// Package resolve matches free-text roster references against the canonical
// reference tables. Curated categories (church community, place of worship,
// society, sacrament type) are lookup-only so spreadsheet typos can never
// pollute them; open categories (language, skill) are created on first
// reference.
package resolve

import (
	"database/sql"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

// SimilarityCutoff is the minimum normalized similarity score for an
// approximate match to be accepted.
const SimilarityCutoff = 0.6

// Store is the slice of the canonical store the resolver needs.
type Store interface {
	ListEntities(category member.Category) ([]member.Entity, error)
	GetOrCreateEntity(tx *sql.Tx, category member.Category, name string) (member.Entity, error)
}

type Resolver struct {
	store Store
}

func New(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps a free-text reference to a canonical entity. The second result
// reports whether a new open-category entity was created. A nil entity with a
// nil error means a curated reference stayed unresolved; the caller records a
// warning and proceeds with a null reference.
func (r *Resolver) Resolve(tx *sql.Tx, category member.Category, reference string) (*member.Entity, bool, error) {
	cleaned := strings.TrimSpace(reference)
	if cleaned == "" {
		return nil, false, nil
	}

	entities, err := r.store.ListEntities(category)
	if err != nil {
		return nil, false, err
	}

	// Exact case-insensitive match wins outright.
	for i := range entities {
		if strings.EqualFold(entities[i].Name, cleaned) {
			return &entities[i], false, nil
		}
	}

	// Otherwise take the single best-scoring candidate at or above the
	// cutoff. On a tie the first entity in persisted iteration order wins;
	// that is deterministic but carries no meaning.
	var best *member.Entity
	bestScore := 0.0
	for i := range entities {
		score := Similarity(cleaned, entities[i].Name)
		if score >= SimilarityCutoff && score > bestScore {
			best = &entities[i]
			bestScore = score
		}
	}
	if best != nil {
		return best, false, nil
	}

	if category.Curated() {
		return nil, false, nil
	}

	created, err := r.store.GetOrCreateEntity(tx, category, cleaned)
	if err != nil {
		return nil, false, err
	}
	return &created, true, nil
}

// Similarity computes a normalized case-insensitive similarity score in
// [0, 1]: 1 minus the Levenshtein distance over the longer length.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}

	runesA := []rune(a)
	runesB := []rune(b)
	longest := len(runesA)
	if len(runesB) > longest {
		longest = len(runesB)
	}
	if longest == 0 {
		return 1
	}

	distance := levenshtein.DistanceForStrings(runesA, runesB, levenshtein.DefaultOptions)
	return 1 - float64(distance)/float64(longest)
}
