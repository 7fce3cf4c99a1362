// Package importer drives the bulk membership-roster import: parse, per-field
// normalization, duplicate checking, fuzzy reference resolution and
// transactional persistence, one isolated row at a time.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/internal/memberid"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/notify"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/reconcile"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/resolve"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/roster"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/storage"
)

type Service struct {
	store      *storage.SQLiteStore
	resolver   *resolve.Resolver
	reconciler *reconcile.Service
	notifier   notify.Notifier
	validate   *validator.Validate
}

func New(store *storage.SQLiteStore, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	resolver := resolve.New(store)
	return &Service{
		store:      store,
		resolver:   resolver,
		reconciler: reconcile.New(resolver, store),
		notifier:   notifier,
		validate:   validator.New(),
	}
}

// Run imports every given roster file in order and returns the aggregated
// report. Only a fatal parse condition (undetectable delimiter, missing
// required header, unreadable file) returns an error; every row-scoped
// condition is folded into the report. The context is checked between rows,
// so a cancelled batch stops cleanly at a row boundary.
func (s *Service) Run(ctx context.Context, paths []string, format string) (*Report, error) {
	report := &Report{}

	for _, path := range paths {
		reader, err := roster.ReaderForPath(path, format)
		if err != nil {
			return nil, err
		}
		source, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		sourceFile := filepath.Base(path)
		for _, row := range source.Rows {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if row.Blank() {
				continue
			}

			report.Total++
			outcome := s.importRow(ctx, row, sourceFile)
			report.record(row.Number, sourceFile, outcome)
		}
	}

	return report, nil
}

// importRow walks one row through the per-row state machine:
// Received → Normalized → DuplicateChecked →
// {DuplicateRejected | Persisted → Associated → Committed | RolledBack}.
func (s *Service) importRow(ctx context.Context, row roster.Row, sourceFile string) Outcome {
	if row.Err != nil {
		return Outcome{Kind: OutcomeValidationFailure, Reason: row.Err.Error()}
	}

	normalized, err := normalizeRow(row)
	if err != nil {
		return Outcome{Kind: OutcomeValidationFailure, Reason: err.Error()}
	}
	if err := s.validate.Struct(normalized); err != nil {
		return Outcome{Kind: OutcomeValidationFailure, Reason: validationReason(err)}
	}

	// Duplicate pre-check happens before any write so re-imports of the
	// same roster terminate here without touching the store.
	if normalized.LegacyID != "" {
		exists, err := s.store.LegacyIDExists(normalized.LegacyID)
		if err != nil {
			return Outcome{Kind: OutcomePersistenceFailure, Reason: err.Error()}
		}
		if exists {
			return Outcome{
				Kind:   OutcomeDuplicate,
				Reason: fmt.Sprintf("legacy id %s already imported", normalized.LegacyID),
			}
		}
	}

	tx, err := s.store.BeginRow()
	if err != nil {
		return Outcome{Kind: OutcomePersistenceFailure, Reason: err.Error()}
	}

	outcome, warnings := s.persistRow(tx, normalized, sourceFile)
	if outcome.Kind != OutcomeSuccess {
		_ = tx.Rollback()
		return outcome
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return Outcome{Kind: OutcomePersistenceFailure, Reason: fmt.Sprintf("commit row: %v", err)}
	}
	outcome.Warnings = warnings

	// Notification is best-effort and happens only after the commit; a
	// failed send never affects the row outcome.
	if normalized.Email != "" {
		_ = s.notifier.SendWelcome(ctx, normalized.Email, normalized.FirstName)
	}

	return outcome
}

// persistRow performs every write for one row inside its transaction. The
// caller commits on success and rolls back on anything else.
func (s *Service) persistRow(tx *sql.Tx, normalized NormalizedRow, sourceFile string) (Outcome, []string) {
	warnings := make([]string, 0, 2)

	rec := member.Record{
		FirstName:        normalized.FirstName,
		LastName:         normalized.LastName,
		OtherNames:       normalized.OtherNames,
		MaidenName:       normalized.MaidenName,
		DateOfBirth:      normalized.DateOfBirth,
		Gender:           normalized.Gender,
		PlaceOfBirth:     normalized.PlaceOfBirth,
		Hometown:         normalized.Hometown,
		Region:           normalized.Region,
		Country:          normalized.Country,
		MaritalStatus:    normalized.MaritalStatus,
		MobileNumber:     normalized.MobileNumber,
		SecondaryNumber:  normalized.SecondaryNumber,
		Email:            normalized.Email,
		CurrentResidence: normalized.CurrentResidence,
		LegacyID:         normalized.LegacyID,
		GeneratedID: memberid.Generate(
			normalized.FirstName, normalized.LastName,
			normalized.DateOfBirth, normalized.LegacyID,
		),
		SourceFile: sourceFile,
	}

	// Curated single-valued references: a miss is a warning, never a failure.
	for _, ref := range []struct {
		category member.Category
		raw      string
		target   **int64
	}{
		{member.CategoryChurchCommunity, normalized.Community, &rec.ChurchCommunity},
		{member.CategoryPlaceOfWorship, normalized.PlaceOfWorship, &rec.PlaceOfWorship},
	} {
		if ref.raw == "" {
			continue
		}
		entity, _, err := s.resolver.Resolve(tx, ref.category, ref.raw)
		if err != nil {
			return Outcome{Kind: OutcomePersistenceFailure, Reason: err.Error()}, nil
		}
		if entity == nil {
			warnings = append(warnings, fmt.Sprintf("unresolved %s reference %q", ref.category, ref.raw))
			continue
		}
		id := entity.ID
		*ref.target = &id
	}

	memberID, err := s.store.InsertMember(tx, &rec)
	if err != nil {
		return Outcome{Kind: OutcomePersistenceFailure, Reason: err.Error()}, nil
	}

	if err := s.persistSubRecords(tx, memberID, normalized); err != nil {
		return Outcome{Kind: OutcomePersistenceFailure, Reason: err.Error()}, nil
	}

	for _, field := range []struct {
		category member.Category
		raw      string
	}{
		{member.CategorySkill, normalized.Skills},
		{member.CategoryLanguage, normalized.Languages},
		{member.CategorySociety, normalized.Societies},
		{member.CategorySacramentType, normalized.Sacraments},
	} {
		if field.raw == "" {
			continue
		}
		result, err := s.reconciler.LinkField(tx, memberID, field.category, field.raw)
		if err != nil {
			return Outcome{Kind: OutcomePersistenceFailure, Reason: err.Error()}, nil
		}
		for _, token := range result.Unresolved {
			warnings = append(warnings, fmt.Sprintf("unresolved %s reference %q", field.category, token))
		}
	}

	return Outcome{Kind: OutcomeSuccess, MemberID: memberID}, warnings
}

func (s *Service) persistSubRecords(tx *sql.Tx, memberID int64, normalized NormalizedRow) error {
	if normalized.Occupation != "" || normalized.Employer != "" {
		err := s.store.InsertOccupation(tx, member.Occupation{
			MemberID: memberID,
			Role:     normalized.Occupation,
			Employer: normalized.Employer,
		})
		if err != nil {
			return err
		}
	}

	if normalized.SpouseName != "" || normalized.FatherName != "" || normalized.MotherName != "" {
		err := s.store.InsertFamilyInfo(tx, member.FamilyInfo{
			MemberID:     memberID,
			SpouseName:   normalized.SpouseName,
			SpouseStatus: normalized.SpouseStatus,
			FatherName:   normalized.FatherName,
			FatherStatus: normalized.FatherStatus,
			MotherName:   normalized.MotherName,
			MotherStatus: normalized.MotherStatus,
		})
		if err != nil {
			return err
		}
	}

	if normalized.EmergencyName != "" || normalized.EmergencyNumber != "" {
		err := s.store.InsertEmergencyContact(tx, member.EmergencyContact{
			MemberID: memberID,
			Name:     normalized.EmergencyName,
			Number:   normalized.EmergencyNumber,
		})
		if err != nil {
			return err
		}
	}

	if normalized.HasMedical || normalized.MedicalDetail != "" {
		err := s.store.InsertMedicalCondition(tx, member.MedicalCondition{
			MemberID:     memberID,
			HasCondition: normalized.HasMedical,
			Detail:       normalized.MedicalDetail,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func validationReason(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	missing := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		missing = append(missing, fieldName(fieldError.Field()))
	}
	return "missing required field(s): " + strings.Join(missing, ", ")
}

func fieldName(field string) string {
	switch field {
	case "FirstName":
		return roster.HeaderFirstName
	case "LastName":
		return roster.HeaderLastName
	case "DateOfBirth":
		return roster.HeaderDateOfBirth
	default:
		return field
	}
}
