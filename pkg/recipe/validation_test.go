package recipe

import (
	"Foodgram-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tagA = "0b51b848-17b2-4bb5-a8a2-6c578a8a9c1a"
	tagB = "3f8a2a43-2f5c-47e2-91a4-93f8f3e9d8b2"
	ingA = "7a1f1d62-8d7e-4f2b-b9f4-121212121212"
	ingB = "9c3e5b74-6a1d-4e8f-8c2b-343434343434"
)

func knownSets() (map[string]bool, map[string]bool) {
	return map[string]bool{tagA: true, tagB: true},
		map[string]bool{ingA: true, ingB: true}
}

func validIngredients() []domain.IngredientAmountRequest {
	return []domain.IngredientAmountRequest{{ID: ingA, Amount: 100}}
}

func TestValidateRecipePayload_Valid(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload([]string{tagA, tagB}, []domain.IngredientAmountRequest{
		{ID: ingA, Amount: 100},
		{ID: ingB, Amount: 1},
	}, 30, tags, ingredients)
	assert.Nil(t, verr)
}

func TestValidateRecipePayload_EmptyTags(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload(nil, validIngredients(), 30, tags, ingredients)
	require.NotNil(t, verr)
	assert.Equal(t, []string{domain.MsgEmptyTags}, verr.Fields["tags"])
}

func TestValidateRecipePayload_UnknownTag(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload([]string{"not-a-known-tag"}, validIngredients(), 30, tags, ingredients)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields["tags"], domain.MsgUnknownTag)
}

func TestValidateRecipePayload_DuplicateTag(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload([]string{tagA, tagA}, validIngredients(), 30, tags, ingredients)
	require.NotNil(t, verr)
	assert.Equal(t, []string{domain.MsgDuplicateTag}, verr.Fields["tags"])
}

func TestValidateRecipePayload_EmptyIngredients(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload([]string{tagA}, nil, 30, tags, ingredients)
	require.NotNil(t, verr)
	assert.Equal(t, []string{domain.MsgEmptyIngredients}, verr.Fields["ingredients"])
}

func TestValidateRecipePayload_UnknownIngredient(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload([]string{tagA}, []domain.IngredientAmountRequest{
		{ID: "missing", Amount: 5},
	}, 30, tags, ingredients)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields["ingredients"], domain.MsgUnknownIngredient)
}

func TestValidateRecipePayload_DuplicateIngredient(t *testing.T) {
	tags, ingredients := knownSets()
	// Same ingredient twice with different amounts is still a duplicate.
	verr := ValidateRecipePayload([]string{tagA}, []domain.IngredientAmountRequest{
		{ID: ingA, Amount: 100},
		{ID: ingA, Amount: 200},
	}, 30, tags, ingredients)
	require.NotNil(t, verr)
	assert.Equal(t, []string{domain.MsgDuplicateIngredient}, verr.Fields["ingredients"])
}

func TestValidateRecipePayload_InvalidAmount(t *testing.T) {
	tags, ingredients := knownSets()
	for _, amount := range []int{0, -5} {
		verr := ValidateRecipePayload([]string{tagA}, []domain.IngredientAmountRequest{
			{ID: ingA, Amount: amount},
		}, 30, tags, ingredients)
		require.NotNil(t, verr)
		assert.Contains(t, verr.Fields["ingredients"], domain.MsgInvalidAmount)
	}
}

func TestValidateRecipePayload_InvalidCookingTime(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload([]string{tagA}, validIngredients(), 0, tags, ingredients)
	require.NotNil(t, verr)
	assert.Equal(t, []string{domain.MsgInvalidCookingTime}, verr.Fields["cooking_time"])
}

func TestValidateRecipePayload_ReportsAllViolations(t *testing.T) {
	verr := ValidateRecipePayload(nil, nil, 0, map[string]bool{}, map[string]bool{})
	require.NotNil(t, verr)
	assert.Len(t, verr.Fields, 3)
	assert.Contains(t, verr.Fields, "tags")
	assert.Contains(t, verr.Fields, "ingredients")
	assert.Contains(t, verr.Fields, "cooking_time")
}

func TestValidateRecipePayload_ViolationReportedOncePerRule(t *testing.T) {
	tags, ingredients := knownSets()
	verr := ValidateRecipePayload([]string{tagA}, []domain.IngredientAmountRequest{
		{ID: "missing-1", Amount: 5},
		{ID: "missing-2", Amount: 5},
	}, 30, tags, ingredients)
	require.NotNil(t, verr)
	assert.Equal(t, []string{domain.MsgUnknownIngredient}, verr.Fields["ingredients"])
}
