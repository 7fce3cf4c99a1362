package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

const dateLayout = "2006-01-02"

// LegacyIDExists is the importer's duplicate pre-check. It is best-effort;
// the unique index on legacy_id remains the final guarantor.
func (s *SQLiteStore) LegacyIDExists(legacyID string) (bool, error) {
	if legacyID == "" {
		return false, nil
	}

	var count int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM members WHERE legacy_id = ?;`, legacyID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check legacy id %q: %w", legacyID, err)
	}
	return count > 0, nil
}

// InsertMember writes one member inside the row transaction and returns the
// new row ID.
func (s *SQLiteStore) InsertMember(tx *sql.Tx, rec *member.Record) (int64, error) {
	const insertStmt = `
INSERT INTO members (
	first_name, last_name, other_names, maiden_name,
	date_of_birth, gender, place_of_birth, hometown, region, country,
	marital_status, mobile_number, secondary_number, email, current_residence,
	church_community_id, place_of_worship_id, legacy_id, generated_id, source_file
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	var legacyID any
	if rec.LegacyID != "" {
		legacyID = rec.LegacyID
	}

	res, err := s.on(tx).Exec(insertStmt,
		rec.FirstName, rec.LastName, rec.OtherNames, rec.MaidenName,
		rec.DateOfBirth.Format(dateLayout), string(rec.Gender),
		rec.PlaceOfBirth, rec.Hometown, rec.Region, rec.Country,
		string(rec.MaritalStatus), rec.MobileNumber, rec.SecondaryNumber,
		rec.Email, rec.CurrentResidence,
		rec.ChurchCommunity, rec.PlaceOfWorship,
		legacyID, rec.GeneratedID, rec.SourceFile,
	)
	if err != nil {
		return 0, fmt.Errorf("insert member %s %s: %w", rec.FirstName, rec.LastName, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted member id: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (s *SQLiteStore) InsertOccupation(tx *sql.Tx, occ member.Occupation) error {
	_, err := s.on(tx).Exec(
		`INSERT INTO occupations (member_id, role, employer) VALUES (?, ?, ?);`,
		occ.MemberID, occ.Role, occ.Employer,
	)
	if err != nil {
		return fmt.Errorf("insert occupation for member %d: %w", occ.MemberID, err)
	}
	return nil
}

func (s *SQLiteStore) InsertFamilyInfo(tx *sql.Tx, info member.FamilyInfo) error {
	_, err := s.on(tx).Exec(
		`INSERT INTO family_info (member_id, spouse_name, spouse_status, father_name, father_status, mother_name, mother_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?);`,
		info.MemberID,
		info.SpouseName, string(info.SpouseStatus),
		info.FatherName, string(info.FatherStatus),
		info.MotherName, string(info.MotherStatus),
	)
	if err != nil {
		return fmt.Errorf("insert family info for member %d: %w", info.MemberID, err)
	}
	return nil
}

func (s *SQLiteStore) InsertEmergencyContact(tx *sql.Tx, contact member.EmergencyContact) error {
	_, err := s.on(tx).Exec(
		`INSERT INTO emergency_contacts (member_id, name, number) VALUES (?, ?, ?);`,
		contact.MemberID, contact.Name, contact.Number,
	)
	if err != nil {
		return fmt.Errorf("insert emergency contact for member %d: %w", contact.MemberID, err)
	}
	return nil
}

func (s *SQLiteStore) InsertMedicalCondition(tx *sql.Tx, condition member.MedicalCondition) error {
	_, err := s.on(tx).Exec(
		`INSERT INTO medical_conditions (member_id, has_condition, detail) VALUES (?, ?, ?);`,
		condition.MemberID, boolToInt(condition.HasCondition), condition.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert medical condition for member %d: %w", condition.MemberID, err)
	}
	return nil
}

const memberColumns = `
	id, first_name, last_name, other_names, maiden_name,
	date_of_birth, gender, place_of_birth, hometown, region, country,
	marital_status, mobile_number, secondary_number, email, current_residence,
	church_community_id, place_of_worship_id, legacy_id, generated_id, source_file`

func (s *SQLiteStore) ListMembers() ([]member.Record, error) {
	rows, err := s.db.Query(`SELECT` + memberColumns + ` FROM members ORDER BY last_name, first_name, id;`)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	records := make([]member.Record, 0, 256)
	for rows.Next() {
		rec, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) GetMemberByID(id int64) (member.Record, error) {
	row := s.db.QueryRow(`SELECT`+memberColumns+` FROM members WHERE id = ?;`, id)
	rec, err := scanMember(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.Record{}, ErrMemberNotFound
		}
		return member.Record{}, err
	}
	return rec, nil
}

func (s *SQLiteStore) DeleteMember(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM members WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete member %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return affected > 0, nil
}

func scanMember(scan func(dest ...any) error) (member.Record, error) {
	var (
		rec       member.Record
		dobRaw    string
		community sql.NullInt64
		worship   sql.NullInt64
		legacyID  sql.NullString
	)

	err := scan(
		&rec.ID, &rec.FirstName, &rec.LastName, &rec.OtherNames, &rec.MaidenName,
		&dobRaw, &rec.Gender, &rec.PlaceOfBirth, &rec.Hometown, &rec.Region, &rec.Country,
		&rec.MaritalStatus, &rec.MobileNumber, &rec.SecondaryNumber, &rec.Email, &rec.CurrentResidence,
		&community, &worship, &legacyID, &rec.GeneratedID, &rec.SourceFile,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.Record{}, err
		}
		return member.Record{}, fmt.Errorf("scan member: %w", err)
	}

	rec.DateOfBirth, err = time.Parse(dateLayout, dobRaw)
	if err != nil {
		return member.Record{}, fmt.Errorf("parse date of birth %q: %w", dobRaw, err)
	}
	if community.Valid {
		rec.ChurchCommunity = &community.Int64
	}
	if worship.Valid {
		rec.PlaceOfWorship = &worship.Int64
	}
	rec.LegacyID = legacyID.String

	return rec, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
