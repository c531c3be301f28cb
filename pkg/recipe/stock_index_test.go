package recipe

import (
	"QuarterMaster/domain"
	"QuarterMaster/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockItem(name string, quantity float64) *entities.Ingredient {
	return &entities.Ingredient{
		ID:       uuid.New(),
		Name:     name,
		Quantity: quantity,
		Unit:     "grams",
	}
}

func ref(name string, quantity float64) domain.RecipeIngredientRef {
	return domain.RecipeIngredientRef{Name: name, Quantity: quantity, Unit: "grams"}
}

func TestBuildStockIndex(t *testing.T) {
	flour := stockItem("Flour", 500)
	eggs := stockItem("eggs", 6)

	index := BuildStockIndex([]*entities.Ingredient{flour, eggs})

	assert.Len(t, index, 2)
	assert.Equal(t, 500.0, index["flour"].Quantity)
	assert.Equal(t, flour.ID, index["flour"].ID)
	assert.Equal(t, 6.0, index["eggs"].Quantity)
}

func TestBuildStockIndexSkipsEmptyNames(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{
		stockItem("", 10),
		stockItem("salt", 100),
	})

	assert.Len(t, index, 1)
	assert.Contains(t, index, "salt")
}

func TestBuildStockIndexLastEntryWinsOnCollision(t *testing.T) {
	first := stockItem("Milk", 200)
	second := stockItem("MILK", 50)

	index := BuildStockIndex([]*entities.Ingredient{first, second})

	require.Len(t, index, 1)
	assert.Equal(t, second.ID, index["milk"].ID)
	assert.Equal(t, 50.0, index["milk"].Quantity)
}

func TestCanMakeExactStock(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{
		stockItem("flour", 500),
		stockItem("eggs", 2),
	})

	refs := []domain.RecipeIngredientRef{ref("flour", 500), ref("eggs", 2)}

	assert.True(t, index.CanMake(refs, false))
}

func TestCanMakeIsCaseInsensitive(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("Olive Oil", 100)})

	assert.True(t, index.CanMake([]domain.RecipeIngredientRef{ref("olive oil", 50)}, false))
	assert.True(t, index.CanMake([]domain.RecipeIngredientRef{ref("OLIVE OIL", 50)}, false))
}

func TestCanMakeDoesNotTrimNames(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("sugar", 100)})

	assert.False(t, index.CanMake([]domain.RecipeIngredientRef{ref(" sugar", 50)}, false))
	assert.False(t, index.CanMake([]domain.RecipeIngredientRef{ref("sugar ", 50)}, false))
}

func TestCanMakeMissingIngredient(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("flour", 500)})

	refs := []domain.RecipeIngredientRef{ref("flour", 100), ref("saffron", 1)}

	assert.False(t, index.CanMake(refs, false))
}

func TestCanMakeEmptyNameDisqualifies(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("flour", 500)})

	refs := []domain.RecipeIngredientRef{ref("", 0)}

	assert.False(t, index.CanMake(refs, false))
	assert.False(t, index.CanMake(refs, true))
}

func TestCanMakeZeroQuantityRefAlwaysSatisfied(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("flour", 0)})

	assert.True(t, index.CanMake([]domain.RecipeIngredientRef{ref("flour", 0)}, false))
}

func TestCanMakeIsPure(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("flour", 500)})
	refs := []domain.RecipeIngredientRef{ref("flour", 200)}

	for i := 0; i < 3; i++ {
		assert.True(t, index.CanMake(refs, false))
	}
	assert.Equal(t, 500.0, index["flour"].Quantity)
}

func TestCanMakeDuplicateRefsIndependentCheck(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("butter", 100)})

	// Each ref is checked against the same snapshot, so 60+60 passes on 100.
	refs := []domain.RecipeIngredientRef{ref("butter", 60), ref("Butter", 60)}

	assert.True(t, index.CanMake(refs, false))
}

func TestCanMakeDuplicateRefsSummedDemand(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("butter", 100)})

	refs := []domain.RecipeIngredientRef{ref("butter", 60), ref("Butter", 60)}

	assert.False(t, index.CanMake(refs, true))
	assert.True(t, index.CanMake([]domain.RecipeIngredientRef{ref("butter", 60), ref("Butter", 40)}, true))
}

func TestStageDecrements(t *testing.T) {
	flour := stockItem("Flour", 500)
	eggs := stockItem("eggs", 6)
	index := BuildStockIndex([]*entities.Ingredient{flour, eggs})

	updates, err := index.StageDecrements(
		[]domain.RecipeIngredientRef{ref("flour", 300), ref("Eggs", 2)},
		false,
	)

	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, 200.0, updates[flour.ID])
	assert.Equal(t, 4.0, updates[eggs.ID])
}

func TestStageDecrementsExactStockReachesZero(t *testing.T) {
	flour := stockItem("flour", 500)
	index := BuildStockIndex([]*entities.Ingredient{flour})

	updates, err := index.StageDecrements([]domain.RecipeIngredientRef{ref("flour", 500)}, false)

	require.NoError(t, err)
	assert.Equal(t, 0.0, updates[flour.ID])
}

func TestStageDecrementsShortfallStagesNothing(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{
		stockItem("flour", 500),
		stockItem("eggs", 1),
	})

	updates, err := index.StageDecrements(
		[]domain.RecipeIngredientRef{ref("flour", 300), ref("eggs", 2)},
		false,
	)

	require.Error(t, err)
	assert.Nil(t, updates)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "eggs", insufficient.Name)
	assert.Equal(t, 2.0, insufficient.Required)
	assert.Equal(t, 1.0, insufficient.Available)
	assert.Equal(t, "not enough eggs in stock", err.Error())
}

func TestStageDecrementsMissingIngredient(t *testing.T) {
	index := BuildStockIndex([]*entities.Ingredient{stockItem("flour", 500)})

	updates, err := index.StageDecrements([]domain.RecipeIngredientRef{ref("saffron", 1)}, false)

	require.Error(t, err)
	assert.Nil(t, updates)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "saffron", insufficient.Name)
	assert.Equal(t, 0.0, insufficient.Available)
}

func TestStageDecrementsSkipsEmptyNames(t *testing.T) {
	flour := stockItem("flour", 500)
	index := BuildStockIndex([]*entities.Ingredient{flour})

	updates, err := index.StageDecrements(
		[]domain.RecipeIngredientRef{ref("", 100), ref("flour", 100)},
		false,
	)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 400.0, updates[flour.ID])
}

func TestStageDecrementsZeroQuantityRefStagesUnchangedValue(t *testing.T) {
	salt := stockItem("salt", 100)
	index := BuildStockIndex([]*entities.Ingredient{salt})

	updates, err := index.StageDecrements([]domain.RecipeIngredientRef{ref("salt", 0)}, false)

	require.NoError(t, err)
	assert.Equal(t, 100.0, updates[salt.ID])
}

func TestStageDecrementsDuplicateRefsIndependent(t *testing.T) {
	butter := stockItem("butter", 100)
	index := BuildStockIndex([]*entities.Ingredient{butter})

	// Both refs stage from the same snapshot; the last one wins and stock
	// ends up decremented once, not twice.
	updates, err := index.StageDecrements(
		[]domain.RecipeIngredientRef{ref("butter", 60), ref("Butter", 60)},
		false,
	)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 40.0, updates[butter.ID])
}

func TestStageDecrementsDuplicateRefsSummedDemand(t *testing.T) {
	butter := stockItem("butter", 100)
	index := BuildStockIndex([]*entities.Ingredient{butter})

	updates, err := index.StageDecrements(
		[]domain.RecipeIngredientRef{ref("butter", 60), ref("Butter", 30)},
		true,
	)
	require.NoError(t, err)
	assert.Equal(t, 10.0, updates[butter.ID])

	_, err = index.StageDecrements(
		[]domain.RecipeIngredientRef{ref("butter", 60), ref("Butter", 60)},
		true,
	)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 120.0, insufficient.Required)
}
