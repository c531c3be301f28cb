package ingredient

import (
	"QuarterMaster/domain"
	"QuarterMaster/entities"
	"QuarterMaster/internal/utils/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		AddIngredient(ctx context.Context, req domain.AddIngredientRequest, userID string) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest, userID string) error
		DeleteIngredient(ctx context.Context, id string, userID string) error
		GetIngredients(ctx context.Context, userID string, search, category string, page, limit int) ([]domain.IngredientResponse, int64, error)
		GetIngredientByID(ctx context.Context, id string, userID string) (domain.IngredientResponse, error)
		UploadIngredientImage(ctx context.Context, req domain.UploadIngredientImageRequest, userID string) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		s3                   storage.AwsS3
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, s3 storage.AwsS3) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		s3:                   s3,
	}
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:        ingredient.ID.String(),
		Name:      ingredient.Name,
		Quantity:  ingredient.Quantity,
		Unit:      ingredient.Unit,
		Category:  ingredient.Category,
		ImageURL:  ingredient.ImageURL,
		CreatedAt: ingredient.CreatedAt,
	}
}

func (s *ingredientService) AddIngredient(ctx context.Context, req domain.AddIngredientRequest, userID string) (domain.IngredientResponse, error) {
	if req.Quantity < 0 {
		return domain.IngredientResponse{}, domain.ErrInvalidQuantity
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	ingredient := &entities.Ingredient{
		ID:       uuid.New(),
		UserID:   userUUID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
	}

	if err := s.ingredientRepository.AddIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id string, req domain.UpdateIngredientRequest, userID string) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if ingredient.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if req.Name != "" {
		ingredient.Name = req.Name
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.ErrInvalidQuantity
		}
		ingredient.Quantity = *req.Quantity
	}

	if req.Unit != "" {
		ingredient.Unit = req.Unit
	}

	if req.Category != "" {
		ingredient.Category = req.Category
	}

	return s.ingredientRepository.UpdateIngredient(ctx, ingredient)
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, id string, userID string) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if ingredient.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	if ingredient.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(ingredient.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.ingredientRepository.DeleteIngredient(ctx, id)
}

func (s *ingredientService) GetIngredients(ctx context.Context, userID string, search, category string, page, limit int) ([]domain.IngredientResponse, int64, error) {
	ingredients, count, err := s.ingredientRepository.GetIngredients(ctx, userID, search, category, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.IngredientResponse
	for _, item := range ingredients {
		response = append(response, toIngredientResponse(item))
	}

	return response, count, nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, id string, userID string) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	if ingredient.UserID.String() != userID {
		return domain.IngredientResponse{}, domain.ErrUnauthorizedAccess
	}

	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) UploadIngredientImage(ctx context.Context, req domain.UploadIngredientImageRequest, userID string) error {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, req.IngredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	if ingredient.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("ingredient-%s", ingredient.ID.String())
	var objectKey string
	var uploadErr error

	if ingredient.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(ingredient.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "ingredients", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "ingredients", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	ingredient.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.ingredientRepository.UpdateIngredient(ctx, ingredient)
}
