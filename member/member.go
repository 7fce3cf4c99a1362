package member

import "time"

// Gender, MaritalStatus and LifeStatus are closed enumerations. Unrecognized
// roster input maps to the package defaults rather than failing the row.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
	MaritalUnknown  MaritalStatus = "unknown"
)

type LifeStatus string

const (
	LifeAlive    LifeStatus = "alive"
	LifeDeceased LifeStatus = "deceased"
	LifeUnknown  LifeStatus = "unknown"
)

// Record is the canonical parishioner entity used across the importer,
// storage and output packages.
type Record struct {
	ID               int64
	FirstName        string
	LastName         string
	OtherNames       string
	MaidenName       string
	DateOfBirth      time.Time
	Gender           Gender
	PlaceOfBirth     string
	Hometown         string
	Region           string
	Country          string
	MaritalStatus    MaritalStatus
	MobileNumber     string
	SecondaryNumber  string
	Email            string
	CurrentResidence string
	ChurchCommunity  *int64
	PlaceOfWorship   *int64
	LegacyID         string
	GeneratedID      string
	SourceFile       string
}

// Occupation is the optional employment sub-record for one member.
type Occupation struct {
	MemberID int64
	Role     string
	Employer string
}

// FamilyInfo holds spouse/parent names and their life status.
type FamilyInfo struct {
	MemberID     int64
	SpouseName   string
	SpouseStatus LifeStatus
	FatherName   string
	FatherStatus LifeStatus
	MotherName   string
	MotherStatus LifeStatus
}

type EmergencyContact struct {
	MemberID int64
	Name     string
	Number   string
}

type MedicalCondition struct {
	MemberID     int64
	HasCondition bool
	Detail       string
}

// Category identifies one canonical reference-entity table.
type Category string

const (
	CategoryChurchCommunity Category = "church_community"
	CategoryPlaceOfWorship  Category = "place_of_worship"
	CategorySociety         Category = "society"
	CategorySacramentType   Category = "sacrament_type"
	CategoryLanguage        Category = "language"
	CategorySkill           Category = "skill"
)

// Curated reports whether the category's value set is administratively
// controlled. Curated categories are never auto-created during import; open
// categories (language, skill) are created on first reference.
func (c Category) Curated() bool {
	switch c {
	case CategoryChurchCommunity, CategoryPlaceOfWorship, CategorySociety, CategorySacramentType:
		return true
	default:
		return false
	}
}

// Entity is one canonical reference entity (a society, a sacrament type, a
// language, ...) identified by its display name within a category.
type Entity struct {
	ID       int64
	Category Category
	Name     string
}
