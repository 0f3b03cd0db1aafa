package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"backend/entity"
)

// SeedAdmin creates the first staff login from env on an empty install.
func SeedAdmin() error {
	db := DB()
	username := getEnv("ADMIN_USERNAME", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if username == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Admin{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.Admin{Username: username, PasswordHash: string(hash)}
	return db.Create(&admin).Error
}

// SeedData fills an empty database with tables and a starter menu so a
// fresh install is usable immediately.
func SeedData() error {
	db := DB()

	var tables int64
	db.Model(&entity.Table{}).Count(&tables)
	if tables == 0 {
		for n := 1; n <= 10; n++ {
			if err := db.Create(&entity.Table{TableNumber: n, IsActive: true}).Error; err != nil {
				return err
			}
		}
	}

	var categories int64
	db.Model(&entity.Category{}).Count(&categories)
	if categories > 0 {
		return nil
	}

	drinks := entity.Category{Name: "Drinks", DisplayOrder: 1}
	snacks := entity.Category{Name: "Snacks", DisplayOrder: 2}
	desserts := entity.Category{Name: "Desserts", DisplayOrder: 3}
	for _, c := range []*entity.Category{&drinks, &snacks, &desserts} {
		if err := db.Create(c).Error; err != nil {
			return err
		}
	}

	items := []entity.MenuItem{
		{Name: "Espresso", Description: "Double shot", PriceCents: 250, CategoryID: drinks.ID, IsAvailable: true},
		{Name: "Cappuccino", Description: "With steamed milk", PriceCents: 350, CategoryID: drinks.ID, IsAvailable: true},
		{Name: "Masala Chai", Description: "Spiced tea", PriceCents: 200, CategoryID: drinks.ID, IsAvailable: true},
		{Name: "Grilled Sandwich", Description: "Cheese and vegetables", PriceCents: 550, CategoryID: snacks.ID, IsAvailable: true},
		{Name: "Samosa", Description: "Two pieces", PriceCents: 150, CategoryID: snacks.ID, IsAvailable: true},
		{Name: "Brownie", Description: "Warm, with walnuts", PriceCents: 400, CategoryID: desserts.ID, IsAvailable: true},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
