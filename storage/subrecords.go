package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

// GetOccupation returns the occupation sub-record for a member when present.
func (s *SQLiteStore) GetOccupation(memberID int64) (member.Occupation, bool, error) {
	occ := member.Occupation{MemberID: memberID}
	err := s.db.QueryRow(
		`SELECT role, employer FROM occupations WHERE member_id = ?;`, memberID,
	).Scan(&occ.Role, &occ.Employer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.Occupation{}, false, nil
		}
		return member.Occupation{}, false, fmt.Errorf("query occupation for member %d: %w", memberID, err)
	}
	return occ, true, nil
}

func (s *SQLiteStore) GetFamilyInfo(memberID int64) (member.FamilyInfo, bool, error) {
	info := member.FamilyInfo{MemberID: memberID}
	err := s.db.QueryRow(
		`SELECT spouse_name, spouse_status, father_name, father_status, mother_name, mother_status
		 FROM family_info WHERE member_id = ?;`, memberID,
	).Scan(&info.SpouseName, &info.SpouseStatus, &info.FatherName, &info.FatherStatus, &info.MotherName, &info.MotherStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.FamilyInfo{}, false, nil
		}
		return member.FamilyInfo{}, false, fmt.Errorf("query family info for member %d: %w", memberID, err)
	}
	return info, true, nil
}

func (s *SQLiteStore) GetEmergencyContact(memberID int64) (member.EmergencyContact, bool, error) {
	contact := member.EmergencyContact{MemberID: memberID}
	err := s.db.QueryRow(
		`SELECT name, number FROM emergency_contacts WHERE member_id = ?;`, memberID,
	).Scan(&contact.Name, &contact.Number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.EmergencyContact{}, false, nil
		}
		return member.EmergencyContact{}, false, fmt.Errorf("query emergency contact for member %d: %w", memberID, err)
	}
	return contact, true, nil
}

func (s *SQLiteStore) GetMedicalCondition(memberID int64) (member.MedicalCondition, bool, error) {
	condition := member.MedicalCondition{MemberID: memberID}
	var hasCondition int
	err := s.db.QueryRow(
		`SELECT has_condition, detail FROM medical_conditions WHERE member_id = ?;`, memberID,
	).Scan(&hasCondition, &condition.Detail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.MedicalCondition{}, false, nil
		}
		return member.MedicalCondition{}, false, fmt.Errorf("query medical condition for member %d: %w", memberID, err)
	}
	condition.HasCondition = hasCondition != 0
	return condition, true, nil
}
