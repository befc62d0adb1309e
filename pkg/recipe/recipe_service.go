package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, authorID, tagSlug string, page, limit int, viewerID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		AddFavorite(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		s3:               s3,
	}
}

// resolveViewer loads the requester's relation sets once per request so that
// payload building stays pure. An empty viewerID yields the anonymous viewer.
func (s *recipeService) resolveViewer(ctx context.Context, viewerID string) (Viewer, error) {
	if viewerID == "" {
		return Viewer{}, nil
	}

	viewerUUID, err := uuid.Parse(viewerID)
	if err != nil {
		return Viewer{}, domain.ErrParseUUID
	}

	viewer := Viewer{
		ID:         viewerID,
		Favorites:  make(map[uuid.UUID]bool),
		Cart:       make(map[uuid.UUID]bool),
		Subscribed: make(map[uuid.UUID]bool),
	}

	favoriteIDs, err := s.recipeRepository.GetRelatedRecipeIDs(ctx, viewerUUID, entities.RelationFavorite)
	if err != nil {
		return Viewer{}, err
	}
	for _, id := range favoriteIDs {
		viewer.Favorites[id] = true
	}

	cartIDs, err := s.recipeRepository.GetRelatedRecipeIDs(ctx, viewerUUID, entities.RelationCart)
	if err != nil {
		return Viewer{}, err
	}
	for _, id := range cartIDs {
		viewer.Cart[id] = true
	}

	authorIDs, err := s.userRepository.GetSubscribedAuthorIDs(ctx, viewerUUID)
	if err != nil {
		return Viewer{}, err
	}
	for _, id := range authorIDs {
		viewer.Subscribed[id] = true
	}

	return viewer, nil
}

func (s *recipeService) GetRecipes(ctx context.Context, authorID, tagSlug string, page, limit int, viewerID string) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, authorID, tagSlug, page, limit)
	if err != nil {
		return nil, 0, err
	}

	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, BuildRecipeResponse(recipe, viewer))
	}

	return result, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return BuildRecipeResponse(recipe, viewer), nil
}

// knownIDSets resolves the referenced tags and ingredients and returns their
// IDs as lookup sets for validation. Malformed IDs never reach the store; the
// uuid column would reject them with a driver error instead of leaving them
// to be reported as unknown.
func (s *recipeService) knownIDSets(ctx context.Context, req []string, ingredients []domain.IngredientAmountRequest) (map[string]bool, map[string]bool, error) {
	knownTags := make(map[string]bool, len(req))
	if ids := validUUIDs(dedupe(req)); len(ids) > 0 {
		tags, err := s.recipeRepository.GetTagsByIDs(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for _, tag := range tags {
			knownTags[tag.ID.String()] = true
		}
	}

	knownIngredients := make(map[string]bool, len(ingredients))
	if len(ingredients) > 0 {
		ids := make([]string, 0, len(ingredients))
		for _, ing := range ingredients {
			ids = append(ids, ing.ID)
		}
		if ids = validUUIDs(dedupe(ids)); len(ids) > 0 {
			found, err := s.recipeRepository.GetIngredientsByIDs(ctx, ids)
			if err != nil {
				return nil, nil, err
			}
			for _, ing := range found {
				knownIngredients[ing.ID.String()] = true
			}
		}
	}

	return knownTags, knownIngredients, nil
}

func validUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func buildLinks(tags []string, ingredients []domain.IngredientAmountRequest) ([]*entities.RecipeTag, []*entities.RecipeIngredient) {
	tagLinks := make([]*entities.RecipeTag, 0, len(tags))
	for _, tagID := range tags {
		tagLinks = append(tagLinks, &entities.RecipeTag{
			ID:    uuid.New(),
			TagID: uuid.MustParse(tagID),
		})
	}

	ingredientLinks := make([]*entities.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		ingredientLinks = append(ingredientLinks, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: uuid.MustParse(ing.ID),
			Amount:       ing.Amount,
		})
	}

	return tagLinks, ingredientLinks
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	knownTags, knownIngredients, err := s.knownIDSets(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if verr := ValidateRecipePayload(req.Tags, req.Ingredients, req.CookingTime, knownTags, knownIngredients); verr != nil {
		return domain.RecipeResponse{}, verr
	}

	recipeID := uuid.New()
	objectKey, err := s.s3.UploadBase64(
		fmt.Sprintf("recipe-%s", recipeID.String()),
		req.Image,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          recipeID,
		UserID:      authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    s.s3.GetPublicLinkKey(objectKey),
		CookingTime: req.CookingTime,
	}
	tagLinks, ingredientLinks := buildLinks(req.Tags, req.Ingredients)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tagLinks, ingredientLinks); err != nil {
		if delErr := s.s3.DeleteObject(objectKey); delErr != nil {
			log.Printf("failed to remove orphaned image %s: %v", objectKey, delErr)
		}
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.UserID.String() != userID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	knownTags, knownIngredients, err := s.knownIDSets(ctx, req.Tags, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if verr := ValidateRecipePayload(req.Tags, req.Ingredients, req.CookingTime, knownTags, knownIngredients); verr != nil {
		return domain.RecipeResponse{}, verr
	}

	if req.Image != "" {
		objectKey, err := s.s3.UploadBase64(
			fmt.Sprintf("recipe-%s", recipe.ID.String()),
			req.Image,
			"recipes",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	recipe.Tags = nil
	recipe.Ingredients = nil
	recipe.User = nil
	tagLinks, ingredientLinks := buildLinks(req.Tags, req.Ingredients)

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tagLinks, ingredientLinks); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.UserID.String() != userID {
		return domain.ErrNotRecipeAuthor
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

// addRelation is the create half of the favorite/cart toggle: it fails with
// ErrRecipeAlreadyAdded when the pair exists, including when a concurrent
// writer wins the unique-index race.
func (s *recipeService) addRelation(ctx context.Context, recipeID, userID, kind string) (domain.ShortRecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShortRecipeResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipeResponse{}, err
	}

	exists, err := s.recipeRepository.HasRelation(ctx, userUUID, recipe.ID, kind)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	if exists {
		return domain.ShortRecipeResponse{}, domain.ErrRecipeAlreadyAdded
	}

	if err := s.recipeRepository.AddRelation(ctx, userUUID, recipe.ID, kind); err != nil {
		if IsDuplicateError(err) {
			return domain.ShortRecipeResponse{}, domain.ErrRecipeAlreadyAdded
		}
		return domain.ShortRecipeResponse{}, err
	}

	return BuildShortRecipeResponse(recipe), nil
}

// removeRelation is the delete half: it fails with ErrRecipeNotAdded when
// there is nothing to remove.
func (s *recipeService) removeRelation(ctx context.Context, recipeID, userID, kind string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	removed, err := s.recipeRepository.RemoveRelation(ctx, userUUID, recipeUUID, kind)
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrRecipeNotAdded
	}
	return nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error) {
	return s.addRelation(ctx, recipeID, userID, entities.RelationFavorite)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	return s.removeRelation(ctx, recipeID, userID, entities.RelationFavorite)
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.ShortRecipeResponse, error) {
	return s.addRelation(ctx, recipeID, userID, entities.RelationCart)
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	return s.removeRelation(ctx, recipeID, userID, entities.RelationCart)
}

func (s *recipeService) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	links, err := s.recipeRepository.GetCartIngredients(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return AggregateShoppingList(links), nil
}
