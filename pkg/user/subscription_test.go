package user

import (
	"Foodgram-Backend/entities"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipesLimit(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		limit   int
		limited bool
	}{
		{name: "absent", raw: "", limit: 0, limited: false},
		{name: "zero", raw: "0", limit: 0, limited: true},
		{name: "positive", raw: "3", limit: 3, limited: true},
		{name: "negative", raw: "-1", limit: 0, limited: false},
		{name: "non numeric", raw: "abc", limit: 0, limited: false},
		{name: "float", raw: "1.5", limit: 0, limited: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, limited := ParseRecipesLimit(tt.raw)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.limited, limited)
		})
	}
}

func authorWithRecipes(n int) (*entities.User, []*entities.Recipe) {
	author := &entities.User{
		ID:       uuid.New(),
		Email:    "author@example.com",
		Username: "author",
	}
	recipes := make([]*entities.Recipe, 0, n)
	for i := 0; i < n; i++ {
		recipes = append(recipes, &entities.Recipe{
			ID:          uuid.New(),
			UserID:      author.ID,
			Name:        "Рецепт",
			CookingTime: 10,
		})
	}
	return author, recipes
}

func TestBuildSubscriptionResponse_TruncationKeepsTotalCount(t *testing.T) {
	author, recipes := authorWithRecipes(3)

	resp := BuildSubscriptionResponse(author, recipes, 3, 1, true, true)

	assert.Len(t, resp.Recipes, 1)
	assert.Equal(t, 3, resp.RecipesCount)
	assert.True(t, resp.IsSubscribed)
}

func TestBuildSubscriptionResponse_NoLimit(t *testing.T) {
	author, recipes := authorWithRecipes(2)

	resp := BuildSubscriptionResponse(author, recipes, 2, 0, false, true)

	assert.Len(t, resp.Recipes, 2)
	assert.Equal(t, 2, resp.RecipesCount)
}

func TestBuildSubscriptionResponse_LimitLargerThanRecipes(t *testing.T) {
	author, recipes := authorWithRecipes(2)

	resp := BuildSubscriptionResponse(author, recipes, 2, 10, true, true)

	assert.Len(t, resp.Recipes, 2)
}

func TestBuildSubscriptionResponse_ZeroLimit(t *testing.T) {
	author, recipes := authorWithRecipes(2)

	resp := BuildSubscriptionResponse(author, recipes, 2, 0, true, true)

	assert.Empty(t, resp.Recipes)
	assert.Equal(t, 2, resp.RecipesCount)
}

func TestBuildSubscriptionResponse_AuthorProfile(t *testing.T) {
	author, recipes := authorWithRecipes(1)

	resp := BuildSubscriptionResponse(author, recipes, 1, 0, false, true)

	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, author.ID.String(), resp.ID)
	assert.Equal(t, "author", resp.Username)
	assert.Equal(t, recipes[0].ID.String(), resp.Recipes[0].ID)
}
