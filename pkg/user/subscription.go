package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"strconv"
)

// ParseRecipesLimit interprets the recipes_limit query parameter. A
// non-negative integer caps the recipes array; anything non-numeric, negative
// or absent means no truncation.
func ParseRecipesLimit(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}

// BuildSubscriptionResponse assembles one subscription-list entry: the
// author's profile, their recipes (optionally truncated) and the total count,
// which is independent of the truncation.
func BuildSubscriptionResponse(author *entities.User, recipes []*entities.Recipe, total int64, recipesLimit int, limited bool, subscribed bool) domain.SubscriptionResponse {
	if limited && recipesLimit < len(recipes) {
		recipes = recipes[:recipesLimit]
	}

	short := make([]domain.ShortRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		short = append(short, domain.ShortRecipeResponse{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			Image:       recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		UserResponse: domain.UserResponse{
			ID:           author.ID.String(),
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: subscribed,
		},
		Recipes:      short,
		RecipesCount: int(total),
	}
}
