package main

import (
	"flag"
	"log"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/pkg/database"
	"go-restaurant-api/pkg/validator"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "admin", "username of the account to reset")
	password := flag.String("password", "Admin12345", "new password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	if !validator.ValidPassword(*password) {
		log.Fatalf("❌ Password must be 8-72 characters with at least one lowercase letter, one uppercase letter and one digit")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the account
	var user model.User
	if err := db.Where("username = ? AND status = ?", *username, model.StatusActive).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *username, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update the hash and clear the token version so every open session
	// has to log in again
	updates := map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": "",
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *username)
}
