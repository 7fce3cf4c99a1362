package storage

import (
	"database/sql"
	"fmt"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

func entityTable(category member.Category) (string, error) {
	switch category {
	case member.CategoryChurchCommunity:
		return "church_communities", nil
	case member.CategoryPlaceOfWorship:
		return "worship_places", nil
	case member.CategorySociety:
		return "societies", nil
	case member.CategorySacramentType:
		return "sacrament_types", nil
	case member.CategoryLanguage:
		return "languages", nil
	case member.CategorySkill:
		return "skills", nil
	default:
		return "", fmt.Errorf("unknown entity category %q", category)
	}
}

func linkTable(category member.Category) (table, column string, err error) {
	switch category {
	case member.CategorySociety:
		return "member_societies", "society_id", nil
	case member.CategorySacramentType:
		return "member_sacraments", "sacrament_type_id", nil
	case member.CategoryLanguage:
		return "member_languages", "language_id", nil
	case member.CategorySkill:
		return "member_skills", "skill_id", nil
	default:
		return "", "", fmt.Errorf("category %q has no association table", category)
	}
}

// ListEntities returns every canonical entity of the category in persisted
// (insertion) order. The resolver depends on this order for its tie-break.
func (s *SQLiteStore) ListEntities(category member.Category) ([]member.Entity, error) {
	table, err := entityTable(category)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT id, name FROM ` + table + ` ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	entities := make([]member.Entity, 0, 64)
	for rows.Next() {
		entity := member.Entity{Category: category}
		if err := rows.Scan(&entity.ID, &entity.Name); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return entities, nil
}

// GetOrCreateEntity inserts the named entity if it does not already exist
// (case-insensitively) and returns the stored row either way. Used only for
// open categories; the resolver never calls it for curated ones.
func (s *SQLiteStore) GetOrCreateEntity(tx *sql.Tx, category member.Category, name string) (member.Entity, error) {
	table, err := entityTable(category)
	if err != nil {
		return member.Entity{}, err
	}

	runner := s.on(tx)
	if _, err := runner.Exec(`INSERT OR IGNORE INTO `+table+` (name) VALUES (?);`, name); err != nil {
		return member.Entity{}, fmt.Errorf("insert %s %q: %w", table, name, err)
	}

	entity := member.Entity{Category: category}
	err = runner.QueryRow(`SELECT id, name FROM `+table+` WHERE name = ? COLLATE NOCASE;`, name).
		Scan(&entity.ID, &entity.Name)
	if err != nil {
		return member.Entity{}, fmt.Errorf("select %s %q: %w", table, name, err)
	}
	return entity, nil
}

// LinkAssociation appends the member↔entity edge if it is absent. The bool
// result reports whether a new edge was written; a second identical call is a
// no-op, which is what makes re-imports idempotent for associations.
func (s *SQLiteStore) LinkAssociation(tx *sql.Tx, memberID int64, entity member.Entity) (bool, error) {
	table, column, err := linkTable(entity.Category)
	if err != nil {
		return false, err
	}

	res, err := s.on(tx).Exec(
		`INSERT OR IGNORE INTO `+table+` (member_id, `+column+`) VALUES (?, ?);`,
		memberID, entity.ID,
	)
	if err != nil {
		return false, fmt.Errorf("link member %d to %s %d: %w", memberID, table, entity.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read linked row count: %w", err)
	}
	return affected > 0, nil
}

// ListMemberEntities returns the entities of one category linked to a member.
func (s *SQLiteStore) ListMemberEntities(memberID int64, category member.Category) ([]member.Entity, error) {
	table, column, err := linkTable(category)
	if err != nil {
		return nil, err
	}
	entityTbl, err := entityTable(category)
	if err != nil {
		return nil, err
	}

	query := `SELECT e.id, e.name FROM ` + entityTbl + ` e
		JOIN ` + table + ` l ON l.` + column + ` = e.id
		WHERE l.member_id = ? ORDER BY e.id;`

	rows, err := s.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("query %s for member %d: %w", table, memberID, err)
	}
	defer rows.Close()

	entities := make([]member.Entity, 0, 8)
	for rows.Next() {
		entity := member.Entity{Category: category}
		if err := rows.Scan(&entity.ID, &entity.Name); err != nil {
			return nil, fmt.Errorf("scan linked %s: %w", table, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate linked %s: %w", table, err)
	}
	return entities, nil
}

// SeedEntities inserts the given names into a category, skipping ones already
// present, and returns how many were newly created. This backs `refdata seed`
// and is the administrative path for growing curated categories.
func (s *SQLiteStore) SeedEntities(category member.Category, names []string) (int, error) {
	table, err := entityTable(category)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin seed transaction: %w", err)
	}

	created := 0
	for _, name := range names {
		res, err := tx.Exec(`INSERT OR IGNORE INTO `+table+` (name) VALUES (?);`, name)
		if err != nil {
			_ = tx.Rollback()
			return created, fmt.Errorf("seed %s %q: %w", table, name, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			created++
		}
	}

	if err := tx.Commit(); err != nil {
		return created, fmt.Errorf("commit seed transaction: %w", err)
	}
	return created, nil
}
