package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessGetShoppingList = "success get shopping list"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetShoppingList = "failed to get shopping list"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrNotRecipeAuthor    = errors.New("only the author can modify this recipe")
	ErrRecipeAlreadyAdded = errors.New("recipe already added")
	ErrRecipeNotAdded     = errors.New("recipe not added")
)

// Validation messages, one per write-payload rule.
var (
	MsgEmptyTags           = "select at least one tag"
	MsgUnknownTag          = "tag does not exist"
	MsgDuplicateTag        = "tags must not repeat"
	MsgEmptyIngredients    = "select at least one ingredient"
	MsgUnknownIngredient   = "ingredient does not exist"
	MsgDuplicateIngredient = "ingredients must not repeat"
	MsgInvalidAmount       = "amount must be greater than zero"
	MsgInvalidCookingTime  = "cooking time must be greater than zero"
)

type (
	IngredientAmountRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount"`
	}

	CreateRecipeRequest struct {
		Tags        []string                  `json:"tags"`
		Ingredients []IngredientAmountRequest `json:"ingredients"`
		Name        string                    `json:"name" validate:"required"`
		Image       string                    `json:"image" validate:"required"` // base64
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time"`
	}

	UpdateRecipeRequest struct {
		Tags        []string                  `json:"tags"`
		Ingredients []IngredientAmountRequest `json:"ingredients"`
		Name        string                    `json:"name" validate:"required"`
		Image       string                    `json:"image,omitempty"` // base64, optional on update
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time"`
	}

	IngredientAmountResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Amount          int    `json:"amount"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	RecipeResponse struct {
		ID                string                     `json:"id"`
		Tags              []TagResponse              `json:"tags"`
		Author            UserResponse               `json:"author"`
		Ingredients       []IngredientAmountResponse `json:"ingredients"`
		IsFavorited       bool                       `json:"is_favorited"`
		IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
		Name              string                     `json:"name"`
		Image             string                     `json:"image"`
		Text              string                     `json:"text"`
		CookingTime       int                        `json:"cooking_time"`
		Created           time.Time                  `json:"created"`
	}

	ShortRecipeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	// ShoppingListItem is one aggregated row of the shopping list: all
	// cart recipes' amounts summed per (name, measurement unit) pair.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int64  `json:"amount"`
	}
)
