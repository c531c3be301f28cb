package recipe

import (
	"QuarterMaster/domain"
	"QuarterMaster/entities"
	"QuarterMaster/internal/utils/storage"
	"QuarterMaster/pkg/ingredient"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) error
		DeleteRecipe(ctx context.Context, id string, userID string) error
		GetUserRecipes(ctx context.Context, userID string, search string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetGlobalRecipes(ctx context.Context, userID string, search string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error)
		UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, userID string) error
		ShareRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		SaveRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		ToggleLike(ctx context.Context, recipeID string, userID string) (bool, int64, error)
		AddComment(ctx context.Context, recipeID string, req domain.CommentRequest, userID string) (domain.CommentResponse, error)
		GetComments(ctx context.Context, recipeID string) ([]domain.CommentResponse, error)
		DeleteComment(ctx context.Context, commentID string, userID string) error

		CheckRecipe(ctx context.Context, recipeID string, userID string) (domain.CheckRecipeResponse, error)
		MakeRecipe(ctx context.Context, recipeID string, userID string) (domain.MakeRecipeResponse, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		s3                   storage.AwsS3
		sumDuplicateDemand   bool
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	s3 storage.AwsS3,
	sumDuplicateDemand bool,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		s3:                   s3,
		sumDuplicateDemand:   sumDuplicateDemand,
	}
}

func marshalIngredients(refs []domain.RecipeIngredientRef) string {
	raw, _ := json.Marshal(refs)
	return string(raw)
}

func marshalInstructions(steps []string) string {
	raw, _ := json.Marshal(steps)
	return string(raw)
}

func parseIngredients(recipe *entities.Recipe) []domain.RecipeIngredientRef {
	var refs []domain.RecipeIngredientRef
	if err := json.Unmarshal([]byte(recipe.Ingredients), &refs); err != nil {
		return nil
	}
	return refs
}

func parseInstructions(recipe *entities.Recipe) []string {
	var steps []string
	if err := json.Unmarshal([]byte(recipe.Instructions), &steps); err != nil {
		return nil
	}
	return steps
}

func ownedBy(recipe *entities.Recipe, userID string) bool {
	return recipe.UserID != nil && recipe.UserID.String() == userID
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, userID string) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:              recipe.ID.String(),
		Name:            recipe.Name,
		Description:     recipe.Description,
		Category:        recipe.Category,
		ImageURL:        recipe.ImageURL,
		Source:          recipe.Source,
		IngredientCount: len(parseIngredients(recipe)),
		CreatedAt:       recipe.CreatedAt,
	}

	if recipe.Source == "global" {
		likes, err := s.recipeRepository.CountLikes(ctx, res.ID)
		if err == nil {
			res.Likes = likes
		}
		if userID != "" {
			liked, err := s.recipeRepository.IsRecipeLiked(ctx, userID, res.ID)
			if err == nil {
				res.AlreadyLiked = liked
			}
		}
	}

	return res
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	// Keep only refs with a usable name and unit; quantity stays as given.
	var validRefs []domain.RecipeIngredientRef
	for _, ref := range req.Ingredients {
		if ref.Name == "" || ref.Unit == "" {
			continue
		}
		validRefs = append(validRefs, ref)
	}
	if len(validRefs) == 0 {
		return domain.RecipeDetailResponse{}, domain.ErrNoIngredients
	}

	var validInstructions []string
	for _, step := range req.Instructions {
		if step != "" {
			validInstructions = append(validInstructions, step)
		}
	}

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       &userUUID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Instructions: marshalInstructions(validInstructions),
		Ingredients:  marshalIngredients(validRefs),
		Source:       "user",
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	return domain.RecipeDetailResponse{
		RecipeResponse: s.toRecipeResponse(ctx, recipe, userID),
		Instructions:   validInstructions,
		Ingredients:    validRefs,
	}, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if !ownedBy(recipe, userID) {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if req.Category != "" {
		recipe.Category = req.Category
	}
	if len(req.Instructions) > 0 {
		recipe.Instructions = marshalInstructions(req.Instructions)
	}
	if len(req.Ingredients) > 0 {
		var validRefs []domain.RecipeIngredientRef
		for _, ref := range req.Ingredients {
			if ref.Name == "" || ref.Unit == "" {
				continue
			}
			validRefs = append(validRefs, ref)
		}
		if len(validRefs) == 0 {
			return domain.ErrNoIngredients
		}
		recipe.Ingredients = marshalIngredients(validRefs)
	}

	return s.recipeRepository.UpdateRecipe(ctx, recipe)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if !ownedBy(recipe, userID) {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if recipe.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.recipeRepository.DeleteRecipe(ctx, id)
}

func (s *recipeService) GetUserRecipes(ctx context.Context, userID string, search string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetUserRecipes(ctx, userID, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.RecipeResponse
	for _, recipe := range recipes {
		response = append(response, s.toRecipeResponse(ctx, recipe, userID))
	}

	return response, count, nil
}

func (s *recipeService) GetGlobalRecipes(ctx context.Context, userID string, search string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetGlobalRecipes(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var response []domain.RecipeResponse
	for _, recipe := range recipes {
		response = append(response, s.toRecipeResponse(ctx, recipe, userID))
	}

	return response, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	if recipe.Source != "global" && !ownedBy(recipe, userID) {
		return domain.RecipeDetailResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	return domain.RecipeDetailResponse{
		RecipeResponse: s.toRecipeResponse(ctx, recipe, userID),
		Instructions:   parseInstructions(recipe),
		Ingredients:    parseIngredients(recipe),
	}, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if !ownedBy(recipe, userID) {
		return domain.ErrUnauthorizedRecipeAccess
	}

	fileName := fmt.Sprintf("recipe-%s", recipe.ID.String())
	var objectKey string
	var uploadErr error

	if recipe.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.recipeRepository.UpdateRecipe(ctx, recipe)
}

func (s *recipeService) ShareRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if !ownedBy(recipe, userID) {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	if _, err := s.recipeRepository.GetGlobalBySharedFrom(ctx, recipeID); err == nil {
		return domain.RecipeResponse{}, domain.ErrRecipeAlreadyShared
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecipeResponse{}, err
	}

	sharedFromID := recipe.ID
	shared := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       recipe.UserID,
		Name:         recipe.Name,
		Description:  recipe.Description,
		Category:     recipe.Category,
		ImageURL:     recipe.ImageURL,
		Instructions: recipe.Instructions,
		Ingredients:  recipe.Ingredients,
		Source:       "global",
		SharedFromID: &sharedFromID,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, shared); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, shared, userID), nil
}

func (s *recipeService) SaveRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.Source != "global" {
		return domain.RecipeResponse{}, domain.ErrRecipeNotShared
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	saved := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       &userUUID,
		Name:         recipe.Name,
		Description:  recipe.Description,
		Category:     recipe.Category,
		ImageURL:     recipe.ImageURL,
		Instructions: recipe.Instructions,
		Ingredients:  recipe.Ingredients,
		Source:       "user",
	}

	if err := s.recipeRepository.CreateRecipe(ctx, saved); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, saved, userID), nil
}

func (s *recipeService) ToggleLike(ctx context.Context, recipeID string, userID string) (bool, int64, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, domain.ErrRecipeNotFound
		}
		return false, 0, err
	}

	if recipe.Source != "global" {
		return false, 0, domain.ErrRecipeNotShared
	}

	liked, err := s.recipeRepository.IsRecipeLiked(ctx, userID, recipeID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		if err := s.recipeRepository.RemoveLike(ctx, userID, recipeID); err != nil {
			return false, 0, err
		}
	} else {
		if err := s.recipeRepository.AddLike(ctx, userID, recipeID); err != nil {
			return false, 0, err
		}
	}

	count, err := s.recipeRepository.CountLikes(ctx, recipeID)
	if err != nil {
		return !liked, 0, err
	}

	return !liked, count, nil
}

func (s *recipeService) AddComment(ctx context.Context, recipeID string, req domain.CommentRequest, userID string) (domain.CommentResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommentResponse{}, domain.ErrRecipeNotFound
		}
		return domain.CommentResponse{}, err
	}

	if recipe.Source != "global" {
		return domain.CommentResponse{}, domain.ErrRecipeNotShared
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CommentResponse{}, domain.ErrParseUUID
	}

	comment := &entities.RecipeComment{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		UserID:   userUUID,
		Content:  req.Content,
	}

	if err := s.recipeRepository.AddComment(ctx, comment); err != nil {
		return domain.CommentResponse{}, err
	}

	return domain.CommentResponse{
		ID:        comment.ID.String(),
		UserID:    userID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *recipeService) GetComments(ctx context.Context, recipeID string) ([]domain.CommentResponse, error) {
	comments, err := s.recipeRepository.GetComments(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var response []domain.CommentResponse
	for _, comment := range comments {
		res := domain.CommentResponse{
			ID:        comment.ID.String(),
			UserID:    comment.UserID.String(),
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		if comment.User != nil {
			res.UserName = comment.User.Name
		}
		response = append(response, res)
	}

	return response, nil
}

func (s *recipeService) DeleteComment(ctx context.Context, commentID string, userID string) error {
	comment, err := s.recipeRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}

	if comment.UserID.String() != userID {
		return domain.ErrUserNotAllowed
	}

	return s.recipeRepository.DeleteComment(ctx, commentID)
}

// CheckRecipe evaluates fulfillability against a fresh stock snapshot without
// writing anything. Calling it repeatedly between writes returns the same result.
func (s *recipeService) CheckRecipe(ctx context.Context, recipeID string, userID string) (domain.CheckRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CheckRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.CheckRecipeResponse{}, err
	}

	if !ownedBy(recipe, userID) {
		return domain.CheckRecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	refs := parseIngredients(recipe)
	if len(refs) == 0 {
		return domain.CheckRecipeResponse{}, domain.ErrNoIngredients
	}

	stock, err := s.ingredientRepository.GetStock(ctx, userID)
	if err != nil {
		return domain.CheckRecipeResponse{}, err
	}

	index := BuildStockIndex(stock)

	availability := make([]domain.IngredientAvailability, 0, len(refs))
	for _, ref := range refs {
		available := index[strings.ToLower(ref.Name)].Quantity
		availability = append(availability, domain.IngredientAvailability{
			Name:       ref.Name,
			Required:   ref.Quantity,
			Unit:       ref.Unit,
			Available:  available,
			Sufficient: ref.Name != "" && available >= ref.Quantity,
		})
	}

	return domain.CheckRecipeResponse{
		RecipeID:    recipe.ID.String(),
		CanMake:     index.CanMake(refs, s.sumDuplicateDemand),
		Ingredients: availability,
	}, nil
}

// MakeRecipe stages one decrement per matched ingredient and commits them all
// in a single transaction, then returns a freshly re-read stock snapshot.
// On any shortfall nothing is written.
func (s *recipeService) MakeRecipe(ctx context.Context, recipeID string, userID string) (domain.MakeRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MakeRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.MakeRecipeResponse{}, err
	}

	if !ownedBy(recipe, userID) {
		return domain.MakeRecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	refs := parseIngredients(recipe)
	if len(refs) == 0 {
		return domain.MakeRecipeResponse{}, domain.ErrNoIngredients
	}

	stock, err := s.ingredientRepository.GetStock(ctx, userID)
	if err != nil {
		return domain.MakeRecipeResponse{}, err
	}

	index := BuildStockIndex(stock)

	updates, err := index.StageDecrements(refs, s.sumDuplicateDemand)
	if err != nil {
		return domain.MakeRecipeResponse{}, err
	}

	if len(updates) > 0 {
		if err := s.ingredientRepository.DecrementQuantities(ctx, userID, updates); err != nil {
			return domain.MakeRecipeResponse{}, err
		}
	}

	// Re-read so the response reflects the committed truth, not the local staging.
	freshStock, err := s.ingredientRepository.GetStock(ctx, userID)
	if err != nil {
		return domain.MakeRecipeResponse{}, err
	}

	response := domain.MakeRecipeResponse{
		RecipeID: recipe.ID.String(),
	}
	for _, item := range freshStock {
		response.Stock = append(response.Stock, domain.IngredientResponse{
			ID:        item.ID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Category:  item.Category,
			ImageURL:  item.ImageURL,
			CreatedAt: item.CreatedAt,
		})
	}

	return response, nil
}
