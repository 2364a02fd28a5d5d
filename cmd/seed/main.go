package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/logger"
	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
)

// Seeds a demo user with a handful of recipes for local development.
func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}

	user := models.User{
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: string(hashed),
	}
	if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		log.Fatal("failed to seed user", zap.Error(err))
	}

	recipes := service.NewRecipeService(db)
	seeds := []service.CreateParams{
		{
			Title:        "Pancakes",
			Description:  "Weekend breakfast staple.",
			Ingredients:  []string{"Flour", "Milk", "Eggs", "Butter"},
			Tags:         []string{"Breakfast", "Quick"},
			Instructions: "Whisk, rest, fry on a hot griddle.",
		},
		{
			Title:        "Tomato Soup",
			Description:  "Simple roasted tomato soup.",
			Ingredients:  []string{"Tomatoes", "Onion", "Garlic", "Stock"},
			Tags:         []string{"Soup", "Vegetarian"},
			Instructions: "Roast, blend, simmer, season.",
		},
		{
			Title:        "Garlic Pasta",
			Description:  "Pantry pasta for busy nights.",
			Ingredients:  []string{"Spaghetti", "Garlic", "Olive Oil", "Chili Flakes"},
			Tags:         []string{"Dinner", "Quick", "Vegetarian"},
			Instructions: "Cook pasta, bloom garlic in oil, toss with pasta water.",
		},
	}

	ctx := context.Background()
	for _, seed := range seeds {
		if _, err := recipes.CreateRecipe(ctx, user.ID, seed); err != nil {
			log.Fatal("failed to seed recipe", zap.String("title", seed.Title), zap.Error(err))
		}
	}

	log.Info("seeded demo data", zap.Int("recipes", len(seeds)))
}
