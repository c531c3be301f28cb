package recipe

import (
	"QuarterMaster/domain"
	"QuarterMaster/entities"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	recipes  map[string]*entities.Recipe
	likes    map[string]map[string]bool
	comments map[string]*entities.RecipeComment
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:  make(map[string]*entities.Recipe),
		likes:    make(map[string]map[string]bool),
		comments: make(map[string]*entities.RecipeComment),
	}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe) error {
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepository) GetUserRecipes(_ context.Context, userID string, _ string, _, _ int) ([]*entities.Recipe, int64, error) {
	var out []*entities.Recipe
	for _, r := range f.recipes {
		if r.Source == "user" && r.UserID != nil && r.UserID.String() == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepository) GetGlobalRecipes(_ context.Context, _ string, _, _ int) ([]*entities.Recipe, int64, error) {
	var out []*entities.Recipe
	for _, r := range f.recipes {
		if r.Source == "global" {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepository) GetGlobalBySharedFrom(_ context.Context, recipeID string) (*entities.Recipe, error) {
	for _, r := range f.recipes {
		if r.Source == "global" && r.SharedFromID != nil && r.SharedFromID.String() == recipeID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepository) CountLikes(_ context.Context, recipeID string) (int64, error) {
	return int64(len(f.likes[recipeID])), nil
}

func (f *fakeRecipeRepository) IsRecipeLiked(_ context.Context, userID, recipeID string) (bool, error) {
	return f.likes[recipeID][userID], nil
}

func (f *fakeRecipeRepository) AddLike(_ context.Context, userID, recipeID string) error {
	if f.likes[recipeID] == nil {
		f.likes[recipeID] = make(map[string]bool)
	}
	f.likes[recipeID][userID] = true
	return nil
}

func (f *fakeRecipeRepository) RemoveLike(_ context.Context, userID, recipeID string) error {
	delete(f.likes[recipeID], userID)
	return nil
}

func (f *fakeRecipeRepository) AddComment(_ context.Context, comment *entities.RecipeComment) error {
	f.comments[comment.ID.String()] = comment
	return nil
}

func (f *fakeRecipeRepository) GetComments(_ context.Context, recipeID string) ([]*entities.RecipeComment, error) {
	var out []*entities.RecipeComment
	for _, c := range f.comments {
		if c.RecipeID.String() == recipeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepository) GetCommentByID(_ context.Context, id string) (*entities.RecipeComment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (f *fakeRecipeRepository) DeleteComment(_ context.Context, id string) error {
	delete(f.comments, id)
	return nil
}

type fakeIngredientRepository struct {
	stock          []*entities.Ingredient
	decrementCalls int
}

func (f *fakeIngredientRepository) AddIngredient(_ context.Context, ingredient *entities.Ingredient) error {
	f.stock = append(f.stock, ingredient)
	return nil
}

func (f *fakeIngredientRepository) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	for _, item := range f.stock {
		if item.ID.String() == id {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIngredientRepository) UpdateIngredient(_ context.Context, _ *entities.Ingredient) error {
	return nil
}

func (f *fakeIngredientRepository) DeleteIngredient(_ context.Context, _ string) error {
	return nil
}

func (f *fakeIngredientRepository) GetIngredients(_ context.Context, _ string, _, _ string, _, _ int) ([]*entities.Ingredient, int64, error) {
	return f.stock, int64(len(f.stock)), nil
}

func (f *fakeIngredientRepository) GetStock(_ context.Context, _ string) ([]*entities.Ingredient, error) {
	return f.stock, nil
}

func (f *fakeIngredientRepository) DecrementQuantities(_ context.Context, _ string, quantities map[uuid.UUID]float64) error {
	f.decrementCalls++
	for id, newQuantity := range quantities {
		for _, item := range f.stock {
			if item.ID == id {
				item.Quantity = newQuantity
			}
		}
	}
	return nil
}

func (f *fakeIngredientRepository) quantityOf(name string) float64 {
	for _, item := range f.stock {
		if item.Name == name {
			return item.Quantity
		}
	}
	return 0
}

func seedRecipe(t *testing.T, repo *fakeRecipeRepository, userID uuid.UUID, refs []domain.RecipeIngredientRef) *entities.Recipe {
	t.Helper()
	raw, err := json.Marshal(refs)
	require.NoError(t, err)

	steps, err := json.Marshal([]string{"mix", "bake"})
	require.NoError(t, err)

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       &userID,
		Name:         "Pancakes",
		Instructions: string(steps),
		Ingredients:  string(raw),
		Source:       "user",
	}
	repo.recipes[recipe.ID.String()] = recipe
	return recipe
}

func TestMakeRecipeDecrementsAllTogether(t *testing.T) {
	userID := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	ingredientRepo := &fakeIngredientRepository{stock: []*entities.Ingredient{
		stockItem("Flour", 500),
		stockItem("Eggs", 6),
		stockItem("Milk", 300),
	}}
	recipe := seedRecipe(t, recipeRepo, userID, []domain.RecipeIngredientRef{
		ref("flour", 200),
		ref("eggs", 2),
		ref("milk", 250),
	})

	service := NewRecipeService(recipeRepo, ingredientRepo, nil, false)

	res, err := service.MakeRecipe(context.Background(), recipe.ID.String(), userID.String())
	require.NoError(t, err)

	assert.Equal(t, recipe.ID.String(), res.RecipeID)
	assert.Equal(t, 1, ingredientRepo.decrementCalls)
	assert.Equal(t, 300.0, ingredientRepo.quantityOf("Flour"))
	assert.Equal(t, 4.0, ingredientRepo.quantityOf("Eggs"))
	assert.Equal(t, 50.0, ingredientRepo.quantityOf("Milk"))

	// The returned stock is the committed snapshot.
	require.Len(t, res.Stock, 3)
	byName := make(map[string]float64, len(res.Stock))
	for _, item := range res.Stock {
		byName[item.Name] = item.Quantity
	}
	assert.Equal(t, 300.0, byName["Flour"])
	assert.Equal(t, 4.0, byName["Eggs"])
	assert.Equal(t, 50.0, byName["Milk"])
}

func TestMakeRecipeShortfallWritesNothing(t *testing.T) {
	userID := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	ingredientRepo := &fakeIngredientRepository{stock: []*entities.Ingredient{
		stockItem("Flour", 500),
		stockItem("Eggs", 1),
	}}
	recipe := seedRecipe(t, recipeRepo, userID, []domain.RecipeIngredientRef{
		ref("flour", 200),
		ref("eggs", 2),
	})

	service := NewRecipeService(recipeRepo, ingredientRepo, nil, false)

	_, err := service.MakeRecipe(context.Background(), recipe.ID.String(), userID.String())

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "eggs", insufficient.Name)

	assert.Equal(t, 0, ingredientRepo.decrementCalls)
	assert.Equal(t, 500.0, ingredientRepo.quantityOf("Flour"))
	assert.Equal(t, 1.0, ingredientRepo.quantityOf("Eggs"))
}

func TestMakeRecipeMissingIngredientWritesNothing(t *testing.T) {
	userID := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	ingredientRepo := &fakeIngredientRepository{stock: []*entities.Ingredient{
		stockItem("Flour", 500),
	}}
	recipe := seedRecipe(t, recipeRepo, userID, []domain.RecipeIngredientRef{
		ref("flour", 200),
		ref("saffron", 1),
	})

	service := NewRecipeService(recipeRepo, ingredientRepo, nil, false)

	_, err := service.MakeRecipe(context.Background(), recipe.ID.String(), userID.String())

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "saffron", insufficient.Name)
	assert.Equal(t, 0, ingredientRepo.decrementCalls)
}

func TestMakeRecipeNotOwned(t *testing.T) {
	owner := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	ingredientRepo := &fakeIngredientRepository{}
	recipe := seedRecipe(t, recipeRepo, owner, []domain.RecipeIngredientRef{ref("flour", 1)})

	service := NewRecipeService(recipeRepo, ingredientRepo, nil, false)

	_, err := service.MakeRecipe(context.Background(), recipe.ID.String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)
}

func TestMakeRecipeNotFound(t *testing.T) {
	service := NewRecipeService(newFakeRecipeRepository(), &fakeIngredientRepository{}, nil, false)

	_, err := service.MakeRecipe(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestCheckRecipeDoesNotWrite(t *testing.T) {
	userID := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	ingredientRepo := &fakeIngredientRepository{stock: []*entities.Ingredient{
		stockItem("Flour", 500),
		stockItem("Eggs", 6),
	}}
	recipe := seedRecipe(t, recipeRepo, userID, []domain.RecipeIngredientRef{
		ref("flour", 200),
		ref("eggs", 2),
	})

	service := NewRecipeService(recipeRepo, ingredientRepo, nil, false)

	// Repeated checks return the same result and never touch stock.
	for i := 0; i < 3; i++ {
		res, err := service.CheckRecipe(context.Background(), recipe.ID.String(), userID.String())
		require.NoError(t, err)
		assert.True(t, res.CanMake)
	}
	assert.Equal(t, 0, ingredientRepo.decrementCalls)
	assert.Equal(t, 500.0, ingredientRepo.quantityOf("Flour"))
}

func TestCheckRecipeReportsAvailability(t *testing.T) {
	userID := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	ingredientRepo := &fakeIngredientRepository{stock: []*entities.Ingredient{
		stockItem("Flour", 100),
	}}
	recipe := seedRecipe(t, recipeRepo, userID, []domain.RecipeIngredientRef{
		ref("FLOUR", 200),
		ref("eggs", 2),
	})

	service := NewRecipeService(recipeRepo, ingredientRepo, nil, false)

	res, err := service.CheckRecipe(context.Background(), recipe.ID.String(), userID.String())
	require.NoError(t, err)

	assert.False(t, res.CanMake)
	require.Len(t, res.Ingredients, 2)

	assert.Equal(t, "FLOUR", res.Ingredients[0].Name)
	assert.Equal(t, 100.0, res.Ingredients[0].Available)
	assert.False(t, res.Ingredients[0].Sufficient)

	assert.Equal(t, "eggs", res.Ingredients[1].Name)
	assert.Equal(t, 0.0, res.Ingredients[1].Available)
	assert.False(t, res.Ingredients[1].Sufficient)
}

func TestCreateRecipeFiltersUnusableRefs(t *testing.T) {
	userID := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	service := NewRecipeService(recipeRepo, &fakeIngredientRepository{}, nil, false)

	res, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:         "Toast",
		Instructions: []string{"toast it"},
		Ingredients: []domain.RecipeIngredientRef{
			{Name: "", Quantity: 1, Unit: "items"},
			{Name: "bread", Quantity: 2, Unit: ""},
			{Name: "bread", Quantity: 2, Unit: "items"},
		},
	}, userID.String())
	require.NoError(t, err)

	require.Len(t, res.Ingredients, 1)
	assert.Equal(t, "bread", res.Ingredients[0].Name)
}

func TestCreateRecipeRejectsAllUnusableRefs(t *testing.T) {
	service := NewRecipeService(newFakeRecipeRepository(), &fakeIngredientRepository{}, nil, false)

	_, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:         "Nothing",
		Instructions: []string{"stare"},
		Ingredients:  []domain.RecipeIngredientRef{{Name: "", Quantity: 1, Unit: "items"}},
	}, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrNoIngredients)
}

func TestShareRecipeCreatesGlobalCopy(t *testing.T) {
	userID := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	service := NewRecipeService(recipeRepo, &fakeIngredientRepository{}, nil, false)
	recipe := seedRecipe(t, recipeRepo, userID, []domain.RecipeIngredientRef{ref("flour", 1)})

	res, err := service.ShareRecipe(context.Background(), recipe.ID.String(), userID.String())
	require.NoError(t, err)
	assert.Equal(t, "global", res.Source)

	// Original stays untouched.
	assert.Equal(t, "user", recipeRepo.recipes[recipe.ID.String()].Source)

	// Sharing twice is rejected.
	_, err = service.ShareRecipe(context.Background(), recipe.ID.String(), userID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeAlreadyShared)
}

func TestSaveRecipeCopiesGlobalToPersonal(t *testing.T) {
	author := uuid.New()
	saver := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	service := NewRecipeService(recipeRepo, &fakeIngredientRepository{}, nil, false)

	original := seedRecipe(t, recipeRepo, author, []domain.RecipeIngredientRef{ref("flour", 1)})

	shared, err := service.ShareRecipe(context.Background(), original.ID.String(), author.String())
	require.NoError(t, err)

	saved, err := service.SaveRecipe(context.Background(), shared.ID, saver.String())
	require.NoError(t, err)
	assert.Equal(t, "user", saved.Source)

	personal := recipeRepo.recipes[saved.ID]
	require.NotNil(t, personal)
	assert.Equal(t, saver.String(), personal.UserID.String())

	// Saving a personal recipe is rejected.
	_, err = service.SaveRecipe(context.Background(), original.ID.String(), saver.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotShared)
}

func TestToggleLikeOnlyOnSharedRecipes(t *testing.T) {
	author := uuid.New()
	liker := uuid.New()
	recipeRepo := newFakeRecipeRepository()
	service := NewRecipeService(recipeRepo, &fakeIngredientRepository{}, nil, false)

	original := seedRecipe(t, recipeRepo, author, []domain.RecipeIngredientRef{ref("flour", 1)})

	_, _, err := service.ToggleLike(context.Background(), original.ID.String(), liker.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotShared)

	shared, err := service.ShareRecipe(context.Background(), original.ID.String(), author.String())
	require.NoError(t, err)

	liked, count, err := service.ToggleLike(context.Background(), shared.ID, liker.String())
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, err = service.ToggleLike(context.Background(), shared.ID, liker.String())
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
}
