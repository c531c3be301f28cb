package domain

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessShareRecipe     = "recipe shared successfully"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessLikeRecipe      = "recipe like updated"
	MessageSuccessAddComment      = "comment added successfully"
	MessageSuccessGetComments     = "success get comments"
	MessageSuccessDeleteComment   = "comment deleted successfully"
	MessageSuccessCheckRecipe     = "success check recipe fulfillability"
	MessageSuccessMakeRecipe      = "recipe made successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedShareRecipe     = "failed to share recipe"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedLikeRecipe      = "failed to update recipe like"
	MessageFailedAddComment      = "failed to add comment"
	MessageFailedGetComments     = "failed to get comments"
	MessageFailedDeleteComment   = "failed to delete comment"
	MessageFailedCheckRecipe     = "failed to check recipe fulfillability"
	MessageFailedMakeRecipe      = "failed to make recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrCommentNotFound          = errors.New("comment not found")
	ErrRecipeAlreadyShared      = errors.New("recipe already shared")
	ErrRecipeNotShared          = errors.New("recipe is not a shared recipe")
	ErrNoIngredients            = errors.New("recipe has no ingredients")
)

// InsufficientStockError reports the first ingredient whose stored quantity
// cannot cover the recipe requirement. No decrement is written when it is returned.
type InsufficientStockError struct {
	Name      string  `json:"name"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough %s in stock", e.Name)
}

type (
	// RecipeIngredientRef is a denormalized snapshot of an ingredient at
	// authoring time, matched against live stock by name, never by id.
	RecipeIngredientRef struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}

	CreateRecipeRequest struct {
		Name         string                `json:"name" validate:"required"`
		Description  string                `json:"description" validate:"omitempty"`
		Category     string                `json:"category" validate:"omitempty"`
		Instructions []string              `json:"instructions" validate:"required,min=1"`
		Ingredients  []RecipeIngredientRef `json:"ingredients" validate:"required,min=1"`
	}

	UpdateRecipeRequest struct {
		Name         string                `json:"name" validate:"omitempty"`
		Description  string                `json:"description" validate:"omitempty"`
		Category     string                `json:"category" validate:"omitempty"`
		Instructions []string              `json:"instructions" validate:"omitempty"`
		Ingredients  []RecipeIngredientRef `json:"ingredients" validate:"omitempty"`
	}

	UploadRecipeImageRequest struct {
		RecipeID string                `json:"recipe_id" form:"recipe_id" validate:"required,uuid"`
		Image    *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	RecipeResponse struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Description     string    `json:"description,omitempty"`
		Category        string    `json:"category,omitempty"`
		ImageURL        string    `json:"image_url,omitempty"`
		Source          string    `json:"source"`
		IngredientCount int       `json:"ingredient_count"`
		Likes           int64     `json:"likes"`
		AlreadyLiked    bool      `json:"already_liked,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Instructions []string              `json:"instructions"`
		Ingredients  []RecipeIngredientRef `json:"ingredients"`
	}

	CommentRequest struct {
		Content string `json:"content" validate:"required"`
	}

	CommentResponse struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		UserName  string    `json:"user_name,omitempty"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"created_at"`
	}

	// IngredientAvailability mirrors one recipe ingredient ref against stock
	// at check time, for the recipe detail view.
	IngredientAvailability struct {
		Name       string  `json:"name"`
		Required   float64 `json:"required"`
		Unit       string  `json:"unit"`
		Available  float64 `json:"available"`
		Sufficient bool    `json:"sufficient"`
	}

	CheckRecipeResponse struct {
		RecipeID    string                   `json:"recipe_id"`
		CanMake     bool                     `json:"can_make"`
		Ingredients []IngredientAvailability `json:"ingredients"`
	}

	MakeRecipeResponse struct {
		RecipeID string               `json:"recipe_id"`
		Stock    []IngredientResponse `json:"stock"`
	}
)
