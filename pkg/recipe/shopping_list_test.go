package recipe

import (
	"Foodgram-Backend/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartRow(name, unit string, amount int) *entities.RecipeIngredient {
	return &entities.RecipeIngredient{
		ID:     uuid.New(),
		Amount: amount,
		Ingredient: &entities.Ingredient{
			ID:              uuid.New(),
			Name:            name,
			MeasurementUnit: unit,
		},
	}
}

func TestAggregateShoppingList_MergesByNameAndUnit(t *testing.T) {
	items := AggregateShoppingList([]*entities.RecipeIngredient{
		cartRow("Соль", "г", 10),
		cartRow("Соль", "г", 5),
	})

	require.Len(t, items, 1)
	assert.Equal(t, "Соль", items[0].Name)
	assert.Equal(t, "г", items[0].MeasurementUnit)
	assert.Equal(t, int64(15), items[0].Amount)
}

func TestAggregateShoppingList_SameNameDifferentUnitStaysSeparate(t *testing.T) {
	items := AggregateShoppingList([]*entities.RecipeIngredient{
		cartRow("Молоко", "мл", 200),
		cartRow("Молоко", "г", 50),
	})

	require.Len(t, items, 2)
	assert.Equal(t, "г", items[0].MeasurementUnit)
	assert.Equal(t, "мл", items[1].MeasurementUnit)
}

func TestAggregateShoppingList_SortedByName(t *testing.T) {
	items := AggregateShoppingList([]*entities.RecipeIngredient{
		cartRow("Сахар", "г", 20),
		cartRow("Мука", "г", 500),
		cartRow("Яйцо", "шт", 3),
	})

	require.Len(t, items, 3)
	assert.Equal(t, "Мука", items[0].Name)
	assert.Equal(t, "Сахар", items[1].Name)
	assert.Equal(t, "Яйцо", items[2].Name)
}

func TestAggregateShoppingList_EmptyCart(t *testing.T) {
	items := AggregateShoppingList(nil)
	assert.Empty(t, items)
}

func TestAggregateShoppingList_SkipsRowsWithoutIngredient(t *testing.T) {
	items := AggregateShoppingList([]*entities.RecipeIngredient{
		{ID: uuid.New(), Amount: 10},
		cartRow("Соль", "г", 5),
	})

	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Amount)
}

func TestFormatShoppingList(t *testing.T) {
	text := FormatShoppingList(AggregateShoppingList([]*entities.RecipeIngredient{
		cartRow("Сахар", "г", 20),
		cartRow("Мука", "г", 500),
	}))

	assert.Equal(t, "Список покупок:\n\n  - Мука: 500 (г)\n  - Сахар: 20 (г)", text)
}

func TestFormatShoppingList_EmptyCart(t *testing.T) {
	assert.Equal(t, "Список покупок:\n", FormatShoppingList(nil))
}

func TestFormatShoppingList_Deterministic(t *testing.T) {
	rows := []*entities.RecipeIngredient{
		cartRow("Соль", "г", 10),
		cartRow("Перец", "г", 2),
		cartRow("Соль", "г", 5),
	}

	first := FormatShoppingList(AggregateShoppingList(rows))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, FormatShoppingList(AggregateShoppingList(rows)))
	}
}
