package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/model"
)

// fakeProfileRepo implements both repository.DietRepository and
// repository.FavoriteRepository in memory.
type fakeProfileRepo struct {
	diets     map[string][]string
	favorites map[string][]model.Favorite
	// set to simulate database failures
	replaceErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		diets:     make(map[string][]string),
		favorites: make(map[string][]model.Favorite),
	}
}

func (f *fakeProfileRepo) ReplaceDiets(ctx context.Context, userID string, diets []string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.diets[userID] = append([]string(nil), diets...)
	return nil
}

func (f *fakeProfileRepo) ListDiets(ctx context.Context, userID string) ([]string, error) {
	return append([]string{}, f.diets[userID]...), nil
}

func (f *fakeProfileRepo) AddFavorite(ctx context.Context, fav *model.Favorite) (bool, error) {
	for _, existing := range f.favorites[fav.UserID] {
		if existing.RecipeID == fav.RecipeID {
			return false, nil
		}
	}
	f.favorites[fav.UserID] = append(f.favorites[fav.UserID], *fav)
	return true, nil
}

func (f *fakeProfileRepo) RemoveFavorite(ctx context.Context, userID string, recipeID int64) error {
	list := f.favorites[userID]
	for i, existing := range list {
		if existing.RecipeID == recipeID {
			f.favorites[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("favorite", "x")
}

func (f *fakeProfileRepo) ListFavorites(ctx context.Context, userID string) ([]model.Favorite, error) {
	return append([]model.Favorite{}, f.favorites[userID]...), nil
}

func newTestProfileService(repo *fakeProfileRepo) *ProfileService {
	return NewProfileService(repo, repo, testLogger())
}

// =========================================================================
// DIET TESTS
// =========================================================================

func TestUpdateDiets_TrimsAndDropsEmptyTags(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newTestProfileService(repo)

	err := svc.UpdateDiets(context.Background(), "u1", []string{" vegan ", "", "  ", "gluten-free"})
	if err != nil {
		t.Fatalf("UpdateDiets() error = %v", err)
	}

	diets, err := svc.Diets(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Diets() error = %v", err)
	}
	if len(diets) != 2 || diets[0] != "vegan" || diets[1] != "gluten-free" {
		t.Errorf("diets = %v, want [vegan gluten-free]", diets)
	}
}

func TestUpdateDiets_EmptyClearsAll(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newTestProfileService(repo)

	if err := svc.UpdateDiets(context.Background(), "u1", []string{"vegan"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateDiets(context.Background(), "u1", nil); err != nil {
		t.Fatalf("UpdateDiets(nil) error = %v", err)
	}

	diets, _ := svc.Diets(context.Background(), "u1")
	if len(diets) != 0 {
		t.Errorf("diets = %v, want empty", diets)
	}
}

// =========================================================================
// FAVORITE TESTS
// =========================================================================

func TestSaveFavorite(t *testing.T) {
	svc := newTestProfileService(newFakeProfileRepo())

	inserted, err := svc.SaveFavorite(context.Background(), "u1", 42, "Pasta", "img.png")
	if err != nil {
		t.Fatalf("SaveFavorite() error = %v", err)
	}
	if !inserted {
		t.Error("SaveFavorite() inserted = false, want true for a new favorite")
	}
}

func TestSaveFavorite_SecondSaveIsNoOp(t *testing.T) {
	svc := newTestProfileService(newFakeProfileRepo())

	if _, err := svc.SaveFavorite(context.Background(), "u1", 42, "Pasta", "img.png"); err != nil {
		t.Fatal(err)
	}
	inserted, err := svc.SaveFavorite(context.Background(), "u1", 42, "Pasta", "img.png")
	if err != nil {
		t.Fatalf("second SaveFavorite() error = %v", err)
	}
	if inserted {
		t.Error("second SaveFavorite() inserted = true, want false")
	}

	favorites, _ := svc.Favorites(context.Background(), "u1")
	if len(favorites) != 1 {
		t.Errorf("favorites count = %d, want exactly 1", len(favorites))
	}
}

func TestSaveFavorite_Validation(t *testing.T) {
	svc := newTestProfileService(newFakeProfileRepo())

	if _, err := svc.SaveFavorite(context.Background(), "u1", 0, "Pasta", ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("SaveFavorite() with id 0: error = %v, want ErrValidation", err)
	}
	if _, err := svc.SaveFavorite(context.Background(), "u1", 42, "  ", ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("SaveFavorite() with blank title: error = %v, want ErrValidation", err)
	}
}

func TestRemoveFavorite_NotFound(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newTestProfileService(repo)

	if _, err := svc.SaveFavorite(context.Background(), "u1", 42, "Pasta", ""); err != nil {
		t.Fatal(err)
	}

	err := svc.RemoveFavorite(context.Background(), "u1", 99)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("RemoveFavorite(99) error = %v, want ErrNotFound", err)
	}

	// The favorites are untouched.
	favorites, _ := svc.Favorites(context.Background(), "u1")
	if len(favorites) != 1 || favorites[0].RecipeID != 42 {
		t.Errorf("favorites = %v, want the single original row", favorites)
	}
}

func TestRemoveFavorite(t *testing.T) {
	svc := newTestProfileService(newFakeProfileRepo())

	if _, err := svc.SaveFavorite(context.Background(), "u1", 42, "Pasta", ""); err != nil {
		t.Fatal(err)
	}
	if err := svc.RemoveFavorite(context.Background(), "u1", 42); err != nil {
		t.Fatalf("RemoveFavorite() error = %v", err)
	}

	favorites, _ := svc.Favorites(context.Background(), "u1")
	if len(favorites) != 0 {
		t.Errorf("favorites = %v, want empty", favorites)
	}
}
