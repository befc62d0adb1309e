package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Username   string    `gorm:"uniqueIndex" json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`

	Recipes []*Recipe `gorm:"foreignKey:UserID" json:"recipes,omitempty"`
	Timestamp
}

// Subscription links a follower to a recipe author. A user cannot
// subscribe to themselves; the pair is unique.
type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:idx_user_author" json:"user_id"`
	AuthorID uuid.UUID `gorm:"uniqueIndex:idx_user_author" json:"author_id"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Timestamp
}
