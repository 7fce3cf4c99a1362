package importer

import (
	"fmt"
	"time"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/internal/normalize"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/roster"
)

// NormalizedRow is the fully-typed form of one roster row after per-field
// cleaning. The validator tags carry the required-field rules evaluated
// before any persistence attempt.
type NormalizedRow struct {
	FirstName   string    `validate:"required"`
	LastName    string    `validate:"required"`
	DateOfBirth time.Time `validate:"required"`

	OtherNames       string
	MaidenName       string
	Gender           member.Gender
	PlaceOfBirth     string
	Hometown         string
	Region           string
	Country          string
	MaritalStatus    member.MaritalStatus
	MobileNumber     string
	SecondaryNumber  string
	Email            string
	CurrentResidence string
	LegacyID         string

	// Free-text references to curated single-valued entities.
	Community      string
	PlaceOfWorship string

	// Raw multi-valued cells, split and linked by the reconciler.
	Skills     string
	Languages  string
	Societies  string
	Sacraments string

	Occupation      string
	Employer        string
	EmergencyName   string
	EmergencyNumber string
	HasMedical      bool
	MedicalDetail   string

	SpouseName   string
	SpouseStatus member.LifeStatus
	FatherName   string
	FatherStatus member.LifeStatus
	MotherName   string
	MotherStatus member.LifeStatus
}

// normalizeRow applies the pure per-field cleaning. A present but unparseable
// date of birth is the one cleaning step that fails the row here; a missing
// one is left zero for the required-field validation to report.
func normalizeRow(row roster.Row) (NormalizedRow, error) {
	normalized := NormalizedRow{
		FirstName:        normalize.Text(row.Get(roster.HeaderFirstName)),
		LastName:         normalize.Text(row.Get(roster.HeaderLastName)),
		OtherNames:       normalize.Text(row.Get(roster.HeaderOtherNames)),
		MaidenName:       normalize.Text(row.Get(roster.HeaderMaidenName)),
		Gender:           normalize.Gender(row.Get(roster.HeaderGender)),
		PlaceOfBirth:     normalize.Text(row.Get(roster.HeaderPlaceOfBirth)),
		Hometown:         normalize.Text(row.Get(roster.HeaderHometown)),
		Region:           normalize.Text(row.Get(roster.HeaderRegion)),
		Country:          normalize.Text(row.Get(roster.HeaderCountry)),
		MaritalStatus:    normalize.MaritalStatus(row.Get(roster.HeaderMaritalStatus)),
		MobileNumber:     normalize.Phone(row.Get(roster.HeaderMobileNumber)),
		SecondaryNumber:  normalize.Phone(row.Get(roster.HeaderSecondaryNumber)),
		Email:            row.Get(roster.HeaderEmail),
		CurrentResidence: normalize.Text(row.Get(roster.HeaderResidence)),
		LegacyID:         normalize.LegacyID(row.Get(roster.HeaderLegacyID)),
		Community:        row.Get(roster.HeaderCommunity),
		PlaceOfWorship:   row.Get(roster.HeaderPlaceOfWorship),
		Skills:           row.Get(roster.HeaderSkills),
		Languages:        row.Get(roster.HeaderLanguages),
		Societies:        row.Get(roster.HeaderSocieties),
		Sacraments:       row.Get(roster.HeaderSacraments),
		Occupation:       normalize.Text(row.Get(roster.HeaderOccupation)),
		Employer:         normalize.Text(row.Get(roster.HeaderEmployer)),
		EmergencyName:    normalize.Text(row.Get(roster.HeaderEmergencyName)),
		EmergencyNumber:  normalize.Phone(row.Get(roster.HeaderEmergencyNumber)),
		HasMedical:       normalize.YesNo(row.Get(roster.HeaderMedicalCondition)),
		MedicalDetail:    normalize.Text(row.Get(roster.HeaderMedicalDetail)),
		SpouseName:       normalize.Text(row.Get(roster.HeaderSpouseName)),
		SpouseStatus:     normalize.LifeStatus(row.Get(roster.HeaderSpouseStatus)),
		FatherName:       normalize.Text(row.Get(roster.HeaderFatherName)),
		FatherStatus:     normalize.LifeStatus(row.Get(roster.HeaderFatherStatus)),
		MotherName:       normalize.Text(row.Get(roster.HeaderMotherName)),
		MotherStatus:     normalize.LifeStatus(row.Get(roster.HeaderMotherStatus)),
	}

	if raw := row.Get(roster.HeaderDateOfBirth); raw != "" {
		dob, err := normalize.Date(raw)
		if err != nil {
			return normalized, fmt.Errorf("date of birth: %w", err)
		}
		normalized.DateOfBirth = dob
	}

	return normalized, nil
}
