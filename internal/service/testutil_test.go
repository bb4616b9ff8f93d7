package service

import (
	"testing"

	"go-restaurant-api/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.Ingredient{},
		&model.Recipe{},
		&model.IngredientDetail{},
		&model.Transaction{},
		&model.Menu{},
		&model.QueueCounter{},
		&model.UserType{},
		&model.User{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedIngredient(t *testing.T, db *gorm.DB, name string, stock int64) *model.Ingredient {
	t.Helper()

	ingredient := &model.Ingredient{Name: name, StockAmount: stock}
	ingredient.RefreshAvailability()
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("seed ingredient %s: %v", name, err)
	}
	return ingredient
}

func seedRecipe(t *testing.T, db *gorm.DB, recipe *model.Recipe) *model.Recipe {
	t.Helper()

	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("seed recipe %s: %v", recipe.Name, err)
	}
	return recipe
}

func reloadIngredient(t *testing.T, db *gorm.DB, ingredient *model.Ingredient) *model.Ingredient {
	t.Helper()

	var got model.Ingredient
	if err := db.First(&got, "id = ?", ingredient.ID).Error; err != nil {
		t.Fatalf("reload ingredient %s: %v", ingredient.Name, err)
	}
	return &got
}
