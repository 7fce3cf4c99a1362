package roster

import "strings"

// Canonical roster column headers. The three required headers are matched
// literally and case-sensitively; a file missing any of them cannot be
// imported at all.
const (
	HeaderLastName    = "Last Name (Surname)"
	HeaderFirstName   = "First Name"
	HeaderDateOfBirth = "Date of Birth"

	HeaderOtherNames       = "Other Names"
	HeaderMaidenName       = "Maiden Name"
	HeaderGender           = "Gender"
	HeaderPlaceOfBirth     = "Place of Birth"
	HeaderHometown         = "Hometown"
	HeaderRegion           = "Region"
	HeaderCountry          = "Country"
	HeaderMobileNumber     = "Mobile Number"
	HeaderSecondaryNumber  = "Secondary Number"
	HeaderEmail            = "Email"
	HeaderOccupation       = "Occupation"
	HeaderEmployer         = "Employer"
	HeaderSkills           = "Skills/Talents"
	HeaderEmergencyName    = "Emergency Contact Name"
	HeaderEmergencyNumber  = "Emergency Contact Number"
	HeaderMedicalCondition = "Any Medical Condition"
	HeaderMedicalDetail    = "Medical Condition Details"
	HeaderSacraments       = "Church Sacraments"
	HeaderMaritalStatus    = "Marital Status"
	HeaderSpouseName       = "Name of Spouse"
	HeaderSpouseStatus     = "Spouse Alive or Deceased"
	HeaderFatherName       = "Father's Name"
	HeaderFatherStatus     = "Father Alive or Deceased"
	HeaderMotherName       = "Mother's Name"
	HeaderMotherStatus     = "Mother Alive or Deceased"
	HeaderLegacyID         = "Old Church ID"
	HeaderPlaceOfWorship   = "Place of Worship"
	HeaderResidence        = "Current Residence"
	HeaderCommunity        = "Community"
	HeaderLanguages        = "Languages Spoken"
	HeaderSocieties        = "Church Groups/Societies"
)

// RequiredHeaders returns the minimum column-header set a roster file must
// declare before any row is processed.
func RequiredHeaders() []string {
	return []string{HeaderLastName, HeaderFirstName, HeaderDateOfBirth}
}

// Row is one parsed roster line keyed by the exact header text. Err is set
// when the physical line could not be parsed; such rows carry no fields and
// are reported as row-scoped failures downstream.
type Row struct {
	Number int
	Fields map[string]string
	Err    error
}

// Get returns the trimmed cell value under the given header, or "" when the
// column is absent.
func (r Row) Get(header string) string {
	return strings.TrimSpace(r.Fields[header])
}

// Blank reports whether every cell in the row is empty. Blank rows are
// dropped before processing and do not count toward batch totals.
func (r Row) Blank() bool {
	if r.Err != nil {
		return false
	}
	for _, value := range r.Fields {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// Source is the parsed content of one roster file.
type Source struct {
	Path      string
	Delimiter rune // 0 for Excel input
	Headers   []string
	Rows      []Row
}
