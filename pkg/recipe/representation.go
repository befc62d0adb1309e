package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
)

// Viewer carries the requester's identity and their relation sets, resolved
// up front so payload building stays a pure function of its arguments. A
// zero Viewer is the anonymous requester: every relative flag comes out
// false, never an error.
type Viewer struct {
	ID         string
	Favorites  map[uuid.UUID]bool
	Cart       map[uuid.UUID]bool
	Subscribed map[uuid.UUID]bool
}

func (v Viewer) Authenticated() bool {
	return v.ID != ""
}

func (v Viewer) IsFavorited(recipeID uuid.UUID) bool {
	return v.Authenticated() && v.Favorites[recipeID]
}

func (v Viewer) IsInCart(recipeID uuid.UUID) bool {
	return v.Authenticated() && v.Cart[recipeID]
}

func (v Viewer) IsSubscribedTo(authorID uuid.UUID) bool {
	return v.Authenticated() && v.Subscribed[authorID]
}

// BuildUserResponse converts a stored user into the profile payload with the
// viewer-relative is_subscribed flag.
func BuildUserResponse(user *entities.User, viewer Viewer) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: viewer.IsSubscribedTo(user.ID),
	}
}

// BuildRecipeResponse converts a stored recipe (with author, tag and
// ingredient links preloaded) into the read payload. Each ingredient link
// expands to the linked ingredient's fields plus its own amount.
func BuildRecipeResponse(recipe *entities.Recipe, viewer Viewer) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, link := range recipe.Tags {
		if link.Tag == nil {
			continue
		}
		tags = append(tags, domain.TagResponse{
			ID:    link.Tag.ID.String(),
			Name:  link.Tag.Name,
			Color: link.Tag.Color,
			Slug:  link.Tag.Slug,
		})
	}

	ingredients := make([]domain.IngredientAmountResponse, 0, len(recipe.Ingredients))
	for _, link := range recipe.Ingredients {
		if link.Ingredient == nil {
			continue
		}
		ingredients = append(ingredients, domain.IngredientAmountResponse{
			ID:              link.Ingredient.ID.String(),
			Name:            link.Ingredient.Name,
			Amount:          link.Amount,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
		})
	}

	var author domain.UserResponse
	if recipe.User != nil {
		author = BuildUserResponse(recipe.User, viewer)
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      viewer.IsFavorited(recipe.ID),
		IsInShoppingCart: viewer.IsInCart(recipe.ID),
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Created:          recipe.CreatedAt,
	}
}

func BuildShortRecipeResponse(recipe *entities.Recipe) domain.ShortRecipeResponse {
	return domain.ShortRecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
