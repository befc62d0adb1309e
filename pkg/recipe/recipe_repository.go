package recipe

import (
	"Foodgram-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, authorID, tagSlug string, page, limit int) ([]*entities.Recipe, int64, error)
		GetTagsByIDs(ctx context.Context, ids []string) ([]*entities.Tag, error)
		GetIngredientsByIDs(ctx context.Context, ids []string) ([]*entities.Ingredient, error)
		AddRelation(ctx context.Context, userID, recipeID uuid.UUID, kind string) error
		RemoveRelation(ctx context.Context, userID, recipeID uuid.UUID, kind string) (int64, error)
		HasRelation(ctx context.Context, userID, recipeID uuid.UUID, kind string) (bool, error)
		GetRelatedRecipeIDs(ctx context.Context, userID uuid.UUID, kind string) ([]uuid.UUID, error)
		GetCartIngredients(ctx context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			tag.RecipeID = recipe.ID
		}
		if err := tx.Create(tags).Error; err != nil {
			return err
		}
		for _, ingredient := range ingredients {
			ingredient.RecipeID = recipe.ID
		}
		return tx.Create(ingredients).Error
	})
}

// UpdateRecipe replaces both link sets in full inside one transaction, so a
// concurrent reader never observes the cleared-but-not-rewritten state.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			tag.RecipeID = recipe.ID
		}
		if err := tx.Create(tags).Error; err != nil {
			return err
		}
		for _, ingredient := range ingredients {
			ingredient.RecipeID = recipe.ID
		}
		return tx.Create(ingredients).Error
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.UserRecipe{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	// A non-uuid id can never match a row; querying would fail the column
	// cast instead.
	if _, err := uuid.Parse(id); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, authorID, tagSlug string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if authorID != "" {
		query = query.Where("recipes.user_id = ?", authorID)
	}
	if tagSlug != "" {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug = ?", tagSlug).
			Distinct("recipes.*")
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetTagsByIDs(ctx context.Context, ids []string) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *recipeRepository) GetIngredientsByIDs(ctx context.Context, ids []string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) AddRelation(ctx context.Context, userID, recipeID uuid.UUID, kind string) error {
	relation := entities.UserRecipe{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		Kind:     kind,
	}
	return r.db.WithContext(ctx).Create(&relation).Error
}

func (r *recipeRepository) RemoveRelation(ctx context.Context, userID, recipeID uuid.UUID, kind string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Delete(&entities.UserRecipe{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) HasRelation(ctx context.Context, userID, recipeID uuid.UUID, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.UserRecipe{}).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetRelatedRecipeIDs(ctx context.Context, userID uuid.UUID, kind string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.UserRecipe{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) GetCartIngredients(ctx context.Context, userID uuid.UUID) ([]*entities.RecipeIngredient, error) {
	var links []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Joins("JOIN user_recipes ON user_recipes.recipe_id = recipe_ingredients.recipe_id").
		Where("user_recipes.user_id = ? AND user_recipes.kind = ?", userID, entities.RelationCart).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// IsDuplicateError reports whether the store rejected a write on a unique
// constraint, i.e. a concurrent writer lost the race for the same key.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
