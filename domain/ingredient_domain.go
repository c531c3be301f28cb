package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddIngredient    = "ingredient added successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessUploadImage      = "image uploaded successfully"

	MessageFailedAddIngredient    = "failed to add ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"
	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedUploadImage      = "failed to upload image"

	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrInvalidQuantity    = errors.New("quantity must not be negative")
	ErrUnauthorizedAccess = errors.New("unauthorized access to ingredient")
)

type (
	AddIngredientRequest struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity" validate:"required,min=0"`
		Unit     string  `json:"unit" validate:"required,oneof=grams ml items"`
		Category string  `json:"category" validate:"omitempty"`
	}

	UpdateIngredientRequest struct {
		Name     string   `json:"name" validate:"omitempty"`
		Quantity *float64 `json:"quantity" validate:"omitempty,min=0"`
		Unit     string   `json:"unit" validate:"omitempty,oneof=grams ml items"`
		Category string   `json:"category" validate:"omitempty"`
	}

	UploadIngredientImageRequest struct {
		IngredientID string                `json:"ingredient_id" form:"ingredient_id" validate:"required,uuid"`
		Image        *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	IngredientResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Quantity  float64   `json:"quantity"`
		Unit      string    `json:"unit"`
		Category  string    `json:"category,omitempty"`
		ImageURL  string    `json:"image_url,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
