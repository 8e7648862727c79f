package sqlite

import (
	"context"
	"sort"
	"testing"
)

func TestReplaceDiets_FirstSet(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	err := db.ReplaceDiets(context.Background(), user.ID, []string{"vegan", "gluten-free"})
	if err != nil {
		t.Fatalf("ReplaceDiets() error = %v", err)
	}

	diets, err := db.ListDiets(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListDiets() error = %v", err)
	}
	assertDietSet(t, diets, []string{"gluten-free", "vegan"})
}

func TestReplaceDiets_ReplacesRegardlessOfPriorContents(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	seed := []string{"ketogenic", "paleo", "pescetarian"}
	if err := db.ReplaceDiets(context.Background(), user.ID, seed); err != nil {
		t.Fatalf("seeding diets: %v", err)
	}

	err := db.ReplaceDiets(context.Background(), user.ID, []string{"vegan", "gluten-free"})
	if err != nil {
		t.Fatalf("ReplaceDiets() error = %v", err)
	}

	diets, err := db.ListDiets(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListDiets() error = %v", err)
	}
	assertDietSet(t, diets, []string{"gluten-free", "vegan"})
}

func TestReplaceDiets_EmptySetClearsAll(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	if err := db.ReplaceDiets(context.Background(), user.ID, []string{"vegan"}); err != nil {
		t.Fatalf("seeding diets: %v", err)
	}
	if err := db.ReplaceDiets(context.Background(), user.ID, nil); err != nil {
		t.Fatalf("ReplaceDiets(nil) error = %v", err)
	}

	diets, err := db.ListDiets(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListDiets() error = %v", err)
	}
	if len(diets) != 0 {
		t.Errorf("diets after clear = %v, want empty", diets)
	}
}

func TestReplaceDiets_DoesNotTouchOtherUsers(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := db.ReplaceDiets(context.Background(), alice.ID, []string{"vegan"}); err != nil {
		t.Fatalf("seeding alice: %v", err)
	}
	if err := db.ReplaceDiets(context.Background(), bob.ID, []string{"paleo"}); err != nil {
		t.Fatalf("seeding bob: %v", err)
	}

	if err := db.ReplaceDiets(context.Background(), alice.ID, nil); err != nil {
		t.Fatalf("clearing alice: %v", err)
	}

	bobDiets, err := db.ListDiets(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("ListDiets(bob) error = %v", err)
	}
	assertDietSet(t, bobDiets, []string{"paleo"})
}

func TestListDiets_EmptyForNewUser(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	diets, err := db.ListDiets(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListDiets() error = %v", err)
	}
	if diets == nil {
		t.Error("ListDiets() should return an empty slice, not nil")
	}
	if len(diets) != 0 {
		t.Errorf("diets = %v, want empty", diets)
	}
}

// assertDietSet compares diet slices as sets — insertion order is not
// significant for dietary restrictions.
func assertDietSet(t *testing.T, got, want []string) {
	t.Helper()
	g := append([]string(nil), got...)
	w := append([]string(nil), want...)
	sort.Strings(g)
	sort.Strings(w)
	if len(g) != len(w) {
		t.Fatalf("diets = %v, want %v", got, want)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("diets = %v, want %v", got, want)
		}
	}
}
