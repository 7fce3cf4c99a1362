package reconcile

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/resolve"
	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/storage"
)

func TestSplitTokens(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"semicolons", "Singing; Dancing; Drumming", []string{"Singing", "Dancing", "Drumming"}},
		{"commas", "singing, dancing", []string{"Singing", "Dancing"}},
		{"the word and", "Singing and Dancing", []string{"Singing", "Dancing"}},
		{"mixed separators", "singing, dancing and drumming", []string{"Singing", "Dancing", "Drumming"}},
		{"empty tokens dropped", "Singing;; ; Dancing", []string{"Singing", "Dancing"}},
		{"and inside a word kept", "Bandsman", []string{"Bandsman"}},
		{"empty input", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitTokens(tc.input)
			if len(got) == 0 && len(tc.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("SplitTokens(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

func newLinkedFixture(t *testing.T) (*Service, *storage.SQLiteStore, int64) {
	t.Helper()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "reconcile_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	rec := member.Record{
		FirstName:   "Kofi",
		LastName:    "Nkrumah",
		DateOfBirth: time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC),
		Gender:      member.GenderMale,
	}
	memberID, err := store.InsertMember(nil, &rec)
	if err != nil {
		t.Fatalf("insert member: %v", err)
	}

	return New(resolve.New(store), store), store, memberID
}

func TestLinkField_Idempotent(t *testing.T) {
	service, store, memberID := newLinkedFixture(t)

	first, err := service.LinkField(nil, memberID, member.CategorySkill, "Singing; Dancing")
	if err != nil {
		t.Fatalf("first link: %v", err)
	}
	if first.Linked != 2 || first.Created != 2 {
		t.Fatalf("expected 2 linked and 2 created, got %+v", first)
	}

	second, err := service.LinkField(nil, memberID, member.CategorySkill, "singing and dancing")
	if err != nil {
		t.Fatalf("second link: %v", err)
	}
	if second.Linked != 0 || second.Created != 0 {
		t.Fatalf("re-import must not add links or entities, got %+v", second)
	}

	linked, err := store.ListMemberEntities(memberID, member.CategorySkill)
	if err != nil {
		t.Fatalf("list member skills: %v", err)
	}
	if len(linked) != 2 {
		t.Fatalf("expected exactly 2 skill links, got %d", len(linked))
	}
}

func TestLinkField_CuratedUnresolvedCollected(t *testing.T) {
	service, store, memberID := newLinkedFixture(t)
	if _, err := store.SeedEntities(member.CategorySociety, []string{"Legion of Mary"}); err != nil {
		t.Fatalf("seed societies: %v", err)
	}

	result, err := service.LinkField(nil, memberID, member.CategorySociety, "Legion of Mary; Nonexistent Fellowship")
	if err != nil {
		t.Fatalf("link societies: %v", err)
	}
	if result.Linked != 1 {
		t.Fatalf("expected 1 link, got %d", result.Linked)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0] != "Nonexistent Fellowship" {
		t.Fatalf("expected one unresolved token, got %v", result.Unresolved)
	}

	societies, err := store.ListEntities(member.CategorySociety)
	if err != nil {
		t.Fatalf("list societies: %v", err)
	}
	if len(societies) != 1 {
		t.Fatalf("curated category must not grow, got %d entries", len(societies))
	}
}
