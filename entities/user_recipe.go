package entities

import (
	"github.com/google/uuid"
)

const (
	RelationFavorite = "favorite"
	RelationCart     = "cart"
)

// UserRecipe is the single user-marks-recipe relation. Kind distinguishes
// favorites from shopping cart entries; uniqueness is scoped per kind.
type UserRecipe struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:idx_user_recipe_kind" json:"user_id"`
	RecipeID uuid.UUID `gorm:"uniqueIndex:idx_user_recipe_kind" json:"recipe_id"`
	Kind     string    `gorm:"uniqueIndex:idx_user_recipe_kind" json:"kind"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Timestamp
}

func (UserRecipe) TableName() string {
	return "user_recipes"
}
