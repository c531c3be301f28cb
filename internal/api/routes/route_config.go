package routes

import (
	"QuarterMaster/internal/api/handlers"
	"QuarterMaster/internal/middleware"
	"QuarterMaster/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	IngredientHandler handlers.IngredientHandler
	RecipeHandler     handlers.RecipeHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Ingredients()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))

	// Basic CRUD operations
	ingredients.Post("", c.IngredientHandler.AddIngredient)
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredientDetails)
	ingredients.Put("/:id", c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)

	ingredients.Post("/image", c.IngredientHandler.UploadIngredientImage)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	// Shared recipe catalogue
	recipes.Get("/shared", c.RecipeHandler.GetGlobalRecipes)
	recipes.Post("/:id/save", c.RecipeHandler.SaveRecipe)
	recipes.Post("/:id/like", c.RecipeHandler.ToggleLike)
	recipes.Post("/:id/comments", c.RecipeHandler.AddComment)
	recipes.Get("/:id/comments", c.RecipeHandler.GetComments)
	recipes.Delete("/:id/comments/:commentId", c.RecipeHandler.DeleteComment)

	// Personal recipes
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("", c.RecipeHandler.GetUserRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetails)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
	recipes.Post("/image", c.RecipeHandler.UploadRecipeImage)
	recipes.Post("/:id/share", c.RecipeHandler.ShareRecipe)

	// Stock reconciliation
	recipes.Get("/:id/check", c.RecipeHandler.CheckRecipe)
	recipes.Post("/:id/make", c.RecipeHandler.MakeRecipe)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
