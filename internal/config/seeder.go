package config

import (
	"log"

	"mylibrary/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedLibraryData seeds an initial catalog and a couple of borrowers so a
// fresh install has something to lend. Skipped when data already exists.
func SeedLibraryData(db *gorm.DB) error {
	if err := seedBooks(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}

	log.Println("✅ Library data seeded successfully")
	return nil
}

func seedBooks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	books := []models.Book{
		{
			ID:       1000,
			Title:    "Patterns of Enterprise Application Architecture",
			Author:   "Fowler Martin",
			ISBN:     "B008OHVDFM",
			IsLoaned: false,
		},
		{
			ID:       1001,
			Title:    "Domain-Driven Design: Tackling Complexity in the Heart of Software",
			Author:   "Evans Eric",
			ISBN:     "0321125215",
			IsLoaned: false,
		},
		{
			ID:       1002,
			Title:    "Refactoring: Improving the Design of Existing Code",
			Author:   "Fowler Martin",
			ISBN:     "0134757599",
			IsLoaned: false,
		},
	}

	return db.Create(&books).Error
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []models.User{
		{ID: 10, FirstName: "John", LastName: "Doe", Email: "john.doe@example.org"},
		{ID: 11, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.org"},
	}

	return db.Create(&users).Error
}
