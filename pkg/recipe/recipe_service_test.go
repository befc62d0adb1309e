package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type relationKey struct {
	userID   uuid.UUID
	recipeID uuid.UUID
	kind     string
}

// fakeRecipeRepository is an in-memory stand-in covering the repository
// surface the service touches.
type fakeRecipeRepository struct {
	recipes     map[uuid.UUID]*entities.Recipe
	tags        map[uuid.UUID]*entities.Tag
	ingredients map[uuid.UUID]*entities.Ingredient
	relations   map[relationKey]bool
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:     make(map[uuid.UUID]*entities.Recipe),
		tags:        make(map[uuid.UUID]*entities.Tag),
		ingredients: make(map[uuid.UUID]*entities.Ingredient),
		relations:   make(map[relationKey]bool),
	}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error {
	stored := *recipe
	for _, link := range tags {
		link.RecipeID = recipe.ID
		link.Tag = f.tags[link.TagID]
		stored.Tags = append(stored.Tags, link)
	}
	for _, link := range ingredients {
		link.RecipeID = recipe.ID
		link.Ingredient = f.ingredients[link.IngredientID]
		stored.Ingredients = append(stored.Ingredients, link)
	}
	f.recipes[recipe.ID] = &stored
	return nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error {
	stored := *recipe
	stored.Tags = nil
	stored.Ingredients = nil
	for _, link := range tags {
		link.RecipeID = recipe.ID
		link.Tag = f.tags[link.TagID]
		stored.Tags = append(stored.Tags, link)
	}
	for _, link := range ingredients {
		link.RecipeID = recipe.ID
		link.Ingredient = f.ingredients[link.IngredientID]
		stored.Ingredients = append(stored.Ingredients, link)
	}
	f.recipes[recipe.ID] = &stored
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(f.recipes, recipeID)
	for key := range f.relations {
		if key.recipeID == recipeID {
			delete(f.relations, key)
		}
	}
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	recipe, ok := f.recipes[recipeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) GetRecipes(_ context.Context, authorID, tagSlug string, page, limit int) ([]*entities.Recipe, int64, error) {
	out := make([]*entities.Recipe, 0, len(f.recipes))
	for _, recipe := range f.recipes {
		if authorID != "" && recipe.UserID.String() != authorID {
			continue
		}
		out = append(out, recipe)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecipeRepository) GetTagsByIDs(_ context.Context, ids []string) ([]*entities.Tag, error) {
	out := make([]*entities.Tag, 0, len(ids))
	for _, id := range ids {
		tagID, err := uuid.Parse(id)
		if err != nil {
			// The uuid column rejects non-uuid text.
			return nil, fmt.Errorf("invalid input syntax for type uuid: %q", id)
		}
		if tag, ok := f.tags[tagID]; ok {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepository) GetIngredientsByIDs(_ context.Context, ids []string) ([]*entities.Ingredient, error) {
	out := make([]*entities.Ingredient, 0, len(ids))
	for _, id := range ids {
		ingredientID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid input syntax for type uuid: %q", id)
		}
		if ingredient, ok := f.ingredients[ingredientID]; ok {
			out = append(out, ingredient)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepository) AddRelation(_ context.Context, userID, recipeID uuid.UUID, kind string) error {
	key := relationKey{userID: userID, recipeID: recipeID, kind: kind}
	if f.relations[key] {
		return gorm.ErrDuplicatedKey
	}
	f.relations[key] = true
	return nil
}

func (f *fakeRecipeRepository) RemoveRelation(_ context.Context, userID, recipeID uuid.UUID, kind string) (int64, error) {
	key := relationKey{userID: userID, recipeID: recipeID, kind: kind}
	if !f.relations[key] {
		return 0, nil
	}
	delete(f.relations, key)
	return 1, nil
}

func (f *fakeRecipeRepository) HasRelation(_ context.Context, userID, recipeID uuid.UUID, kind string) (bool, error) {
	return f.relations[relationKey{userID: userID, recipeID: recipeID, kind: kind}], nil
}

func (f *fakeRecipeRepository) GetRelatedRecipeIDs(_ context.Context, userID uuid.UUID, kind string) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for key := range f.relations {
		if key.userID == userID && key.kind == kind {
			out = append(out, key.recipeID)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepository) GetCartIngredients(_ context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error) {
	out := []*entities.RecipeIngredient{}
	for key := range f.relations {
		if key.userID != userID || key.kind != entities.RelationCart {
			continue
		}
		if recipe, ok := f.recipes[key.recipeID]; ok {
			out = append(out, recipe.Ingredients...)
		}
	}
	return out, nil
}

type fakeUserRepository struct {
	users         map[uuid.UUID]*entities.User
	subscriptions map[relationKey]bool
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:         make(map[uuid.UUID]*entities.User),
		subscriptions: make(map[relationKey]bool),
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUsers(_ context.Context, page, limit int) ([]*entities.User, int64, error) {
	out := make([]*entities.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepository) CreateSubscription(_ context.Context, userID, authorID uuid.UUID) error {
	key := relationKey{userID: userID, recipeID: authorID}
	if f.subscriptions[key] {
		return gorm.ErrDuplicatedKey
	}
	f.subscriptions[key] = true
	return nil
}

func (f *fakeUserRepository) DeleteSubscription(_ context.Context, userID, authorID uuid.UUID) (int64, error) {
	key := relationKey{userID: userID, recipeID: authorID}
	if !f.subscriptions[key] {
		return 0, nil
	}
	delete(f.subscriptions, key)
	return 1, nil
}

func (f *fakeUserRepository) IsSubscribed(_ context.Context, userID, authorID uuid.UUID) (bool, error) {
	return f.subscriptions[relationKey{userID: userID, recipeID: authorID}], nil
}

func (f *fakeUserRepository) GetSubscribedAuthorIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for key := range f.subscriptions {
		if key.userID == userID {
			out = append(out, key.recipeID)
		}
	}
	return out, nil
}

func (f *fakeUserRepository) GetSubscribedAuthors(_ context.Context, userID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	out := []*entities.User{}
	for key := range f.subscriptions {
		if key.userID == userID {
			if author, ok := f.users[key.recipeID]; ok {
				out = append(out, author)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepository) GetRecipesByAuthor(_ context.Context, authorID uuid.UUID) ([]*entities.Recipe, int64, error) {
	return nil, 0, nil
}

type fakeS3 struct {
	deleted []string
}

func (f *fakeS3) UploadBase64(name string, data string, dir string, allowed ...string) (string, error) {
	return fmt.Sprintf("%s/%s.png", dir, name), nil
}

func (f *fakeS3) DeleteObject(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey
}

type serviceFixture struct {
	service    RecipeService
	repo       *fakeRecipeRepository
	users      *fakeUserRepository
	s3         *fakeS3
	author     *entities.User
	tagID      uuid.UUID
	ingredient uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	repo := newFakeRecipeRepository()
	users := newFakeUserRepository()
	s3 := &fakeS3{}

	author := &entities.User{ID: uuid.New(), Email: "chef@example.com", Username: "chef"}
	users.users[author.ID] = author

	tag := &entities.Tag{ID: uuid.New(), Name: "Обед", Color: "#FF0000", Slug: "lunch"}
	repo.tags[tag.ID] = tag

	ingredient := &entities.Ingredient{ID: uuid.New(), Name: "Соль", MeasurementUnit: "г"}
	repo.ingredients[ingredient.ID] = ingredient

	return &serviceFixture{
		service:    NewRecipeService(repo, users, s3),
		repo:       repo,
		users:      users,
		s3:         s3,
		author:     author,
		tagID:      tag.ID,
		ingredient: ingredient.ID,
	}
}

func (fx *serviceFixture) createRecipe(t *testing.T) domain.RecipeResponse {
	t.Helper()

	resp, err := fx.service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Tags: []string{fx.tagID.String()},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: fx.ingredient.String(), Amount: 10},
		},
		Name:        "Суп",
		Image:       "iVBORw0KGgo=",
		Text:        "Варить.",
		CookingTime: 30,
	}, fx.author.ID.String())
	require.NoError(t, err)
	return resp
}

func TestCreateRecipe_RoundTrip(t *testing.T) {
	fx := newServiceFixture(t)

	resp := fx.createRecipe(t)

	assert.Equal(t, "Суп", resp.Name)
	assert.Equal(t, 30, resp.CookingTime)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "lunch", resp.Tags[0].Slug)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, 10, resp.Ingredients[0].Amount)
	assert.Contains(t, resp.Image, "recipes/recipe-")
}

func TestCreateRecipe_ValidationFailureReportsAllFields(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Суп",
		Image:       "iVBORw0KGgo=",
		Text:        "Варить.",
		CookingTime: 0,
	}, fx.author.ID.String())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "tags")
	assert.Contains(t, verr.Fields, "ingredients")
	assert.Contains(t, verr.Fields, "cooking_time")
}

func TestUpdateRecipe_OnlyAuthor(t *testing.T) {
	fx := newServiceFixture(t)
	created := fx.createRecipe(t)

	_, err := fx.service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Tags: []string{fx.tagID.String()},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: fx.ingredient.String(), Amount: 20},
		},
		Name:        "Другой суп",
		Text:        "Варить дольше.",
		CookingTime: 45,
	}, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)
}

func TestUpdateRecipe_ReplacesLinksAndKeepsImage(t *testing.T) {
	fx := newServiceFixture(t)
	created := fx.createRecipe(t)

	resp, err := fx.service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Tags: []string{fx.tagID.String()},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: fx.ingredient.String(), Amount: 20},
		},
		Name:        "Другой суп",
		Text:        "Варить дольше.",
		CookingTime: 45,
	}, fx.author.ID.String())

	require.NoError(t, err)
	assert.Equal(t, "Другой суп", resp.Name)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, 20, resp.Ingredients[0].Amount)
	// No image in the request leaves the stored one alone.
	assert.Equal(t, created.Image, resp.Image)
}

func TestDeleteRecipe_NotFound(t *testing.T) {
	fx := newServiceFixture(t)

	err := fx.service.DeleteRecipe(context.Background(), uuid.New().String(), fx.author.ID.String())

	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestFavoriteToggle(t *testing.T) {
	fx := newServiceFixture(t)
	created := fx.createRecipe(t)
	viewerID := uuid.New().String()

	short, err := fx.service.AddFavorite(context.Background(), created.ID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, short.ID)
	assert.Equal(t, created.Name, short.Name)

	_, err = fx.service.AddFavorite(context.Background(), created.ID, viewerID)
	assert.ErrorIs(t, err, domain.ErrRecipeAlreadyAdded)

	detail, err := fx.service.GetRecipeDetail(context.Background(), created.ID, viewerID)
	require.NoError(t, err)
	assert.True(t, detail.IsFavorited)
	assert.False(t, detail.IsInShoppingCart)

	require.NoError(t, fx.service.RemoveFavorite(context.Background(), created.ID, viewerID))
	err = fx.service.RemoveFavorite(context.Background(), created.ID, viewerID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotAdded)
}

func TestAddFavorite_UnknownRecipe(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.AddFavorite(context.Background(), uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestCartToggleAndShoppingList(t *testing.T) {
	fx := newServiceFixture(t)
	created := fx.createRecipe(t)
	viewerID := uuid.New().String()

	_, err := fx.service.AddToCart(context.Background(), created.ID, viewerID)
	require.NoError(t, err)

	items, err := fx.service.GetShoppingList(context.Background(), viewerID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Соль", items[0].Name)
	assert.Equal(t, int64(10), items[0].Amount)

	require.NoError(t, fx.service.RemoveFromCart(context.Background(), created.ID, viewerID))

	items, err = fx.service.GetShoppingList(context.Background(), viewerID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateRecipe_MalformedTagID(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Tags: []string{"not-a-uuid"},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: fx.ingredient.String(), Amount: 10},
		},
		Name:        "Суп",
		Image:       "iVBORw0KGgo=",
		Text:        "Варить.",
		CookingTime: 30,
	}, fx.author.ID.String())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{domain.MsgUnknownTag}, verr.Fields["tags"])
}

func TestCreateRecipe_MalformedIngredientID(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Tags: []string{fx.tagID.String()},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: "not-a-uuid", Amount: 10},
		},
		Name:        "Суп",
		Image:       "iVBORw0KGgo=",
		Text:        "Варить.",
		CookingTime: 30,
	}, fx.author.ID.String())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{domain.MsgUnknownIngredient}, verr.Fields["ingredients"])
}

type failingCreateRepository struct {
	*fakeRecipeRepository
}

func (f *failingCreateRepository) CreateRecipe(context.Context, *entities.Recipe, []*entities.RecipeTag, []*entities.RecipeIngredient) error {
	return errors.New("connection reset")
}

func TestCreateRecipe_InsertFailureRemovesUploadedImage(t *testing.T) {
	fx := newServiceFixture(t)
	s3 := &fakeS3{}
	service := NewRecipeService(&failingCreateRepository{fx.repo}, fx.users, s3)

	_, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Tags: []string{fx.tagID.String()},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: fx.ingredient.String(), Amount: 10},
		},
		Name:        "Суп",
		Image:       "iVBORw0KGgo=",
		Text:        "Варить.",
		CookingTime: 30,
	}, fx.author.ID.String())

	require.Error(t, err)
	require.Len(t, s3.deleted, 1)
	assert.Contains(t, s3.deleted[0], "recipes/recipe-")
}

func TestGetRecipeDetail_MalformedID(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.GetRecipeDetail(context.Background(), "garbage", "")

	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetRecipeDetail_AnonymousViewer(t *testing.T) {
	fx := newServiceFixture(t)
	created := fx.createRecipe(t)

	detail, err := fx.service.GetRecipeDetail(context.Background(), created.ID, "")

	require.NoError(t, err)
	assert.False(t, detail.IsFavorited)
	assert.False(t, detail.IsInShoppingCart)
	assert.False(t, detail.Author.IsSubscribed)
}
