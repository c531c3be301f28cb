package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	Instructions string     `json:"instructions" gorm:"type:text"`
	Ingredients  string     `json:"ingredients" gorm:"type:text"`
	Source       string     `json:"source"` // "user" or "global"
	SharedFromID *uuid.UUID `json:"shared_from_id,omitempty"`

	User     *User            `gorm:"foreignKey:UserID"`
	Likes    []*RecipeLike    `gorm:"foreignKey:RecipeID"`
	Comments []*RecipeComment `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type RecipeLike struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"index:idx_recipe_likes_pair,unique" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"index:idx_recipe_likes_pair,unique" json:"user_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	User   *User   `gorm:"foreignKey:UserID"`
	Timestamp
}

type RecipeComment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	UserID   uuid.UUID `json:"user_id"`
	Content  string    `json:"content" gorm:"type:text"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	User   *User   `gorm:"foreignKey:UserID"`
	Timestamp
}
