package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/roster"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/storage"
)

func newTestService(t *testing.T) (*Service, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "sfoacc_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return New(store, nil), store
}

func writeRoster(t *testing.T, headers []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create roster: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		t.Fatalf("write headers: %v", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("flush roster: %v", err)
	}
	return path
}

// minimalHeaders is the smallest importable column set plus the legacy id,
// which round-trip and duplicate tests depend on.
func minimalHeaders() []string {
	return []string{roster.HeaderLastName, roster.HeaderFirstName, roster.HeaderDateOfBirth, roster.HeaderLegacyID}
}

func minimalRow(last, first, dob, legacyID string) []string {
	return []string{last, first, dob, legacyID}
}

type recordingNotifier struct {
	welcomed []string
}

func (n *recordingNotifier) SendWelcome(_ context.Context, email, _ string) error {
	n.welcomed = append(n.welcomed, email)
	return nil
}

func (n *recordingNotifier) SendVerification(context.Context, string, string) error { return nil }

func TestRun_FullRowRoundTrip(t *testing.T) {
	t.Parallel()

	service, store := newTestService(t)
	notifier := &recordingNotifier{}
	service.notifier = notifier

	for category, names := range map[member.Category][]string{
		member.CategoryChurchCommunity: {"St Theresa"},
		member.CategoryPlaceOfWorship:  {"Grotto"},
		member.CategorySociety:         {"Christian Mothers Association", "Knights of Marshall"},
		member.CategorySacramentType:   {"Baptism", "First Communion", "Confirmation"},
	} {
		if _, err := store.SeedEntities(category, names); err != nil {
			t.Fatalf("seed %s: %v", category, err)
		}
	}

	headers := []string{
		roster.HeaderLastName, roster.HeaderFirstName, roster.HeaderOtherNames,
		roster.HeaderMaidenName, roster.HeaderDateOfBirth, roster.HeaderGender,
		roster.HeaderPlaceOfBirth, roster.HeaderHometown, roster.HeaderRegion,
		roster.HeaderCountry, roster.HeaderMaritalStatus, roster.HeaderMobileNumber,
		roster.HeaderEmail, roster.HeaderResidence, roster.HeaderCommunity,
		roster.HeaderPlaceOfWorship, roster.HeaderOccupation, roster.HeaderEmployer,
		roster.HeaderSkills, roster.HeaderLanguages, roster.HeaderSocieties,
		roster.HeaderSacraments, roster.HeaderEmergencyName, roster.HeaderEmergencyNumber,
		roster.HeaderMedicalCondition, roster.HeaderMedicalDetail,
		roster.HeaderSpouseName, roster.HeaderSpouseStatus,
		roster.HeaderFatherName, roster.HeaderFatherStatus,
		roster.HeaderMotherName, roster.HeaderMotherStatus,
		roster.HeaderLegacyID,
	}
	path := writeRoster(t, headers, [][]string{{
		"nkrumah", "kofi", "kwame",
		"", "15/01/2000", "M",
		"accra", "elmina", "central",
		"ghana", "Married", "0244123456",
		"kofi@example.com", "osu, accra", "st theresa",
		"GROTTO", "teacher", "ges",
		"Singing and Drumming", "Twi, English", "christian mothers association and knights of marshall",
		"Baptism, First Communion", "ama nkrumah", "0209876543",
		"Yes", "asthma",
		"ama nkrumah", "Alive",
		"kweku nkrumah", "Deceased",
		"abena mensah", "alive",
		"8",
	}})

	report, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Total != 1 || report.Success != 1 || report.Failed != 0 || report.Duplicates != 0 {
		t.Fatalf("report = %+v, want 1 total, 1 success", report)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", report.Warnings)
	}

	members, err := store.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("persisted %d members, want 1", len(members))
	}
	rec := members[0]
	if rec.FirstName != "Kofi" || rec.LastName != "Nkrumah" || rec.OtherNames != "Kwame" {
		t.Errorf("names = %q %q %q, want title-cased", rec.FirstName, rec.LastName, rec.OtherNames)
	}
	if rec.GeneratedID != "KN1501-0008" {
		t.Errorf("GeneratedID = %q, want KN1501-0008", rec.GeneratedID)
	}
	if rec.Gender != member.GenderMale {
		t.Errorf("Gender = %q, want male", rec.Gender)
	}
	if rec.MaritalStatus != member.MaritalMarried {
		t.Errorf("MaritalStatus = %q, want married", rec.MaritalStatus)
	}
	if rec.ChurchCommunity == nil {
		t.Error("ChurchCommunity not linked")
	}
	if rec.PlaceOfWorship == nil {
		t.Error("PlaceOfWorship not linked")
	}
	if rec.SourceFile != "roster.csv" {
		t.Errorf("SourceFile = %q, want roster.csv", rec.SourceFile)
	}

	occ, ok, err := store.GetOccupation(rec.ID)
	if err != nil || !ok {
		t.Fatalf("GetOccupation = %v, %v", ok, err)
	}
	if occ.Role != "Teacher" || occ.Employer != "Ges" {
		t.Errorf("occupation = %+v", occ)
	}
	family, ok, err := store.GetFamilyInfo(rec.ID)
	if err != nil || !ok {
		t.Fatalf("GetFamilyInfo = %v, %v", ok, err)
	}
	if family.FatherStatus != member.LifeDeceased || family.MotherStatus != member.LifeAlive {
		t.Errorf("family statuses = %+v", family)
	}
	contact, ok, err := store.GetEmergencyContact(rec.ID)
	if err != nil || !ok {
		t.Fatalf("GetEmergencyContact = %v, %v", ok, err)
	}
	if contact.Name != "Ama Nkrumah" {
		t.Errorf("emergency contact = %+v", contact)
	}
	condition, ok, err := store.GetMedicalCondition(rec.ID)
	if err != nil || !ok {
		t.Fatalf("GetMedicalCondition = %v, %v", ok, err)
	}
	if !condition.HasCondition || condition.Detail != "Asthma" {
		t.Errorf("medical condition = %+v", condition)
	}

	for category, want := range map[member.Category]int{
		member.CategorySkill:         2,
		member.CategoryLanguage:      2,
		member.CategorySociety:       2,
		member.CategorySacramentType: 2,
	} {
		entities, err := store.ListMemberEntities(rec.ID, category)
		if err != nil {
			t.Fatalf("list %s: %v", category, err)
		}
		if len(entities) != want {
			t.Errorf("%s links = %d, want %d (%v)", category, len(entities), want, entities)
		}
	}

	if len(notifier.welcomed) != 1 || notifier.welcomed[0] != "kofi@example.com" {
		t.Errorf("welcomed = %v", notifier.welcomed)
	}
}

func TestRun_PartialFailureContainment(t *testing.T) {
	t.Parallel()

	service, store := newTestService(t)

	rows := make([][]string, 0, 10)
	for i := 0; i < 10; i++ {
		dob := "15/01/2000"
		if i == 4 {
			dob = "not-a-date"
		}
		rows = append(rows, minimalRow("Mensah", fmt.Sprintf("Member%d", i), dob, fmt.Sprintf("%d", 100+i)))
	}
	path := writeRoster(t, minimalHeaders(), rows)

	report, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Total != 10 || report.Success != 9 || report.Failed != 1 {
		t.Fatalf("report = %+v, want 10/9/1", report)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "row 6") {
		t.Fatalf("errors = %v, want one error for row 6", report.Errors)
	}
	if !strings.Contains(report.Errors[0], "date of birth") {
		t.Errorf("error %q does not name the failing field", report.Errors[0])
	}

	members, err := store.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 9 {
		t.Fatalf("persisted %d members, want 9", len(members))
	}
}

func TestRun_ReimportIsIdempotent(t *testing.T) {
	t.Parallel()

	service, store := newTestService(t)
	path := writeRoster(t, minimalHeaders(), [][]string{
		minimalRow("Mensah", "Ama", "03/12/1985", "42"),
		minimalRow("Osei", "Yaw", "2001-06-20", "43"),
		minimalRow("Asante", "Efua", "07/07/1977", "44"),
	})

	first, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Success != 3 {
		t.Fatalf("first run success = %d, want 3", first.Success)
	}

	second, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Total != 3 || second.Success != 0 || second.Duplicates != 3 {
		t.Fatalf("second run = %+v, want all duplicates", second)
	}

	members, err := store.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("persisted %d members after re-import, want 3", len(members))
	}
}

func TestRun_MissingRequiredHeaderAborts(t *testing.T) {
	t.Parallel()

	service, store := newTestService(t)
	path := writeRoster(t,
		[]string{roster.HeaderLastName, roster.HeaderFirstName, "Birthday"},
		[][]string{{"Mensah", "Ama", "03/12/1985"}},
	)

	_, err := service.Run(context.Background(), []string{path}, "")
	if err == nil {
		t.Fatal("expected fatal parse error for missing required header")
	}
	var fatal *roster.FatalParseError
	if !errors.As(err, &fatal) {
		t.Fatalf("error = %v, want *roster.FatalParseError", err)
	}
	if !strings.Contains(err.Error(), roster.HeaderDateOfBirth) {
		t.Errorf("error %q does not name the missing header", err)
	}

	members, err := store.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("persisted %d members from an unimportable file", len(members))
	}
}

func TestRun_BlankRowsExcludedFromTotals(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	path := writeRoster(t, minimalHeaders(), [][]string{
		minimalRow("Mensah", "Ama", "03/12/1985", "42"),
		{"", "", "", ""},
		minimalRow("Osei", "Yaw", "2001-06-20", "43"),
		{"  ", "", "", ""},
	})

	report, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Total != 2 || report.Success != 2 {
		t.Fatalf("report = %+v, want 2 counted rows", report)
	}
}

func TestRun_UnresolvedCuratedReferenceWarnsOnly(t *testing.T) {
	t.Parallel()

	service, store := newTestService(t)
	if _, err := store.SeedEntities(member.CategoryChurchCommunity, []string{"St Theresa"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	headers := append(minimalHeaders(), roster.HeaderCommunity)
	path := writeRoster(t, headers, [][]string{
		{"Mensah", "Ama", "03/12/1985", "42", "Completely Unrelated Name"},
	})

	report, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Success != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v, want success despite unresolved reference", report)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "church_community") {
		t.Fatalf("warnings = %v, want one church_community warning", report.Warnings)
	}

	members, err := store.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if members[0].ChurchCommunity != nil {
		t.Error("unresolved curated reference must leave the member unlinked")
	}

	entities, err := store.ListEntities(member.CategoryChurchCommunity)
	if err != nil {
		t.Fatalf("list entities: %v", err)
	}
	if len(entities) != 1 {
		t.Fatalf("curated category grew to %d entities", len(entities))
	}
}

func TestRun_ErrorDetailsCapped(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	rows := make([][]string, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, minimalRow("Mensah", fmt.Sprintf("Member%d", i), "not-a-date", ""))
	}
	path := writeRoster(t, minimalHeaders(), rows)

	report, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Failed != 12 {
		t.Fatalf("Failed = %d, want 12", report.Failed)
	}
	if len(report.Errors) != maxReportDetails {
		t.Fatalf("len(Errors) = %d, want %d", len(report.Errors), maxReportDetails)
	}
}

func TestRun_MissingRequiredFieldsReported(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	path := writeRoster(t, minimalHeaders(), [][]string{
		minimalRow("Mensah", "", "03/12/1985", "42"),
		minimalRow("Osei", "Yaw", "", "43"),
	})

	report, err := service.Run(context.Background(), []string{path}, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Failed != 2 || report.Success != 0 {
		t.Fatalf("report = %+v, want both rows failed", report)
	}
	if !strings.Contains(report.Errors[0], roster.HeaderFirstName) {
		t.Errorf("error %q does not name %q", report.Errors[0], roster.HeaderFirstName)
	}
	if !strings.Contains(report.Errors[1], roster.HeaderDateOfBirth) {
		t.Errorf("error %q does not name %q", report.Errors[1], roster.HeaderDateOfBirth)
	}
}

func TestRun_CancelledContextStopsAtRowBoundary(t *testing.T) {
	t.Parallel()

	service, store := newTestService(t)
	path := writeRoster(t, minimalHeaders(), [][]string{
		minimalRow("Mensah", "Ama", "03/12/1985", "42"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Run(ctx, []string{path}, "")
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("err = %v, want context cancellation", err)
	}

	members, err := store.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("persisted %d members after upfront cancellation", len(members))
	}
}
