// Package reconcile splits multi-valued roster fields (skills, languages,
// societies, sacraments) into tokens and links the resolved entities to a
// member. Links are append-if-absent, so re-importing the same roster never
// duplicates an association.
package reconcile

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/internal/normalize"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

type Resolver interface {
	Resolve(tx *sql.Tx, category member.Category, reference string) (*member.Entity, bool, error)
}

type Store interface {
	LinkAssociation(tx *sql.Tx, memberID int64, entity member.Entity) (bool, error)
}

type Service struct {
	resolver Resolver
	store    Store
}

func New(resolver Resolver, store Store) *Service {
	return &Service{resolver: resolver, store: store}
}

// Result summarizes one multi-valued field for one member.
type Result struct {
	Linked     int
	Created    int
	Unresolved []string
}

// Lists arrive with semicolons, commas or the word "and" between values;
// everything is normalized to semicolons before splitting.
var andSeparator = regexp.MustCompile(`(?i)\band\b`)

// SplitTokens breaks a raw multi-valued cell into cleaned, title-cased tokens.
func SplitTokens(raw string) []string {
	cleaned := andSeparator.ReplaceAllString(raw, ";")
	cleaned = strings.ReplaceAll(cleaned, ",", ";")

	tokens := make([]string, 0, 4)
	for _, part := range strings.Split(cleaned, ";") {
		token := normalize.Text(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// LinkField resolves every token of a multi-valued cell against the category
// and links the results to the member inside the row transaction. Unresolved
// curated tokens are collected as warnings, never errors.
func (s *Service) LinkField(tx *sql.Tx, memberID int64, category member.Category, raw string) (Result, error) {
	result := Result{}
	for _, token := range SplitTokens(raw) {
		entity, created, err := s.resolver.Resolve(tx, category, token)
		if err != nil {
			return result, err
		}
		if entity == nil {
			result.Unresolved = append(result.Unresolved, token)
			continue
		}
		if created {
			result.Created++
		}

		linked, err := s.store.LinkAssociation(tx, memberID, *entity)
		if err != nil {
			return result, err
		}
		if linked {
			result.Linked++
		}
	}
	return result, nil
}
