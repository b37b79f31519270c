package database

import (
	"log"
	"os"

	"insurance-app/internal/domain/subscriptions"
	"insurance-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	// TranslateError turns driver unique violations into
	// gorm.ErrDuplicatedKey, which the registration and policy number
	// paths rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&subscriptions.Subscription{},
	); err != nil {
		log.Fatal("AutoMigrate error: ", err)
	}

	log.Println("Connected and migrated successfully")
}
