package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/junaidrashid-git/sunrise-cafe/auth"
	"github.com/junaidrashid-git/sunrise-cafe/config"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func product(name, description, price, image string, stock int) models.Product {
	return models.Product{
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		ImageURL:    image,
		Stock:       stock,
	}
}

// Catalog is the café menu inserted into an empty products table.
func Catalog() []models.Product {
	return []models.Product{
		product("Croissant", "Flaky, buttery pastry perfect for breakfast.", "2.99", "Images/croissant.jpg", 100),
		product("Scone", "Buttery scone with your choice of fruit.", "3.49", "Images/scone.jpeg", 100),
		product("Bagel", "Bagel, served with cream cheese.", "2.49", "Images/bagel.jpg", 100),
		product("Blueberry Muffin", "Sweet muffin loaded with fresh blueberries.", "2.99", "Images/blueberry.jpg", 100),
		product("Apple Pie", "Classic apple pie with a flaky crust.", "4.99", "Images/applepie.jpg", 50),
		product("Yogurt Parfait", "Layers of yogurt, granola, and berries.", "3.99", "Images/yogurt.png", 75),
		product("Oatmeal", "Warm oatmeal with brown sugar and fruit.", "3.49", "Images/oatmeal.jpg", 100),
		product("Breakfast Sandwich", "Egg, cheese, and bacon.", "4.49", "Images/BaconandEgg.jpg", 80),
		product("Pancakes", "Stack of pancakes with maple syrup.", "4.29", "Images/pancakes.jpg", 100),
		product("Quiche", "Egg and cheese quiche with spinach.", "4.99", "Images/quiche.jpg", 40),
		product("French Toast", "Golden-brown French toast with syrup.", "4.29", "Images/frenchtoast.jpg", 100),
		product("Fruit Smoothie", "Fresh fruit blended into a cool smoothie.", "3.99", "Images/smoothie.jpg", 100),
		product("Fresh Brewed Coffee", "Hot, aromatic coffee.", "2.29", "Images/coffee.jpg", 500),
		product("Herbal Tea", "Relaxing herbal tea blend, served hot.", "2.49", "Images/tea.jpg", 500),
		product("Espresso", "Rich, bold espresso shot.", "2.99", "Images/espresso.jpg", 500),
		product("Chai Latte", "Spiced chai tea with steamed milk.", "3.29", "Images/chai.jpg", 500),
	}
}

// Seed creates the admin account if missing and the catalog if the products table is empty.
// It is idempotent.
func Seed(ctx context.Context, db *gorm.DB, admin config.AdminAccount) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", admin.Username).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			hash, err := auth.HashPassword(admin.Password)
			if err != nil {
				return err
			}
			user := models.User{
				Username:     admin.Username,
				Email:        admin.Email,
				PasswordHash: hash,
				IsAdmin:      true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}
			slog.Info("Created admin user", "username", user.Username)
		case err != nil:
			return fmt.Errorf("failed to look up admin user: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if count > 0 {
			return nil // already seeded
		}

		products := Catalog()
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		slog.Info("Seeded products", "count", len(products))
		return nil
	})
}
