package recipe

import (
	"Foodgram-Backend/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecipe(authorID uuid.UUID) *entities.Recipe {
	tagID := uuid.New()
	ingredientID := uuid.New()
	recipeID := uuid.New()
	return &entities.Recipe{
		ID:          recipeID,
		UserID:      authorID,
		Name:        "Борщ",
		Text:        "Варить час.",
		ImageURL:    "https://bucket.s3.region.amazonaws.com/recipes/recipe-1.png",
		CookingTime: 60,
		User: &entities.User{
			ID:       authorID,
			Email:    "chef@example.com",
			Username: "chef",
		},
		Tags: []*entities.RecipeTag{
			{ID: uuid.New(), RecipeID: recipeID, TagID: tagID, Tag: &entities.Tag{
				ID: tagID, Name: "Обед", Color: "#FF0000", Slug: "lunch",
			}},
		},
		Ingredients: []*entities.RecipeIngredient{
			{ID: uuid.New(), RecipeID: recipeID, IngredientID: ingredientID, Amount: 300, Ingredient: &entities.Ingredient{
				ID: ingredientID, Name: "Свёкла", MeasurementUnit: "г",
			}},
		},
	}
}

func TestAnonymousViewerFlagsAreFalse(t *testing.T) {
	recipe := sampleRecipe(uuid.New())

	resp := BuildRecipeResponse(recipe, Viewer{})

	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.False(t, resp.Author.IsSubscribed)
}

func TestViewerRelativeFlags(t *testing.T) {
	authorID := uuid.New()
	recipe := sampleRecipe(authorID)
	viewer := Viewer{
		ID:         uuid.New().String(),
		Favorites:  map[uuid.UUID]bool{recipe.ID: true},
		Cart:       map[uuid.UUID]bool{},
		Subscribed: map[uuid.UUID]bool{authorID: true},
	}

	resp := BuildRecipeResponse(recipe, viewer)

	assert.True(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.True(t, resp.Author.IsSubscribed)
}

func TestBuildRecipeResponse_ExpandsLinks(t *testing.T) {
	recipe := sampleRecipe(uuid.New())

	resp := BuildRecipeResponse(recipe, Viewer{})

	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "Обед", resp.Tags[0].Name)
	assert.Equal(t, "lunch", resp.Tags[0].Slug)

	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, "Свёкла", resp.Ingredients[0].Name)
	assert.Equal(t, "г", resp.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 300, resp.Ingredients[0].Amount)

	assert.Equal(t, "chef", resp.Author.Username)
	assert.Equal(t, recipe.ID.String(), resp.ID)
}

func TestBuildUserResponse(t *testing.T) {
	user := &entities.User{
		ID:        uuid.New(),
		Email:     "user@example.com",
		Username:  "user",
		FirstName: "Иван",
		LastName:  "Иванов",
	}

	resp := BuildUserResponse(user, Viewer{})

	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, "Иван", resp.FirstName)
	assert.False(t, resp.IsSubscribed)
}

func TestBuildShortRecipeResponse(t *testing.T) {
	recipe := sampleRecipe(uuid.New())

	short := BuildShortRecipeResponse(recipe)

	assert.Equal(t, recipe.ID.String(), short.ID)
	assert.Equal(t, recipe.Name, short.Name)
	assert.Equal(t, recipe.ImageURL, short.Image)
	assert.Equal(t, recipe.CookingTime, short.CookingTime)
}
