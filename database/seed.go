package database

import (
	"canteen-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedProducts inserts the canteen menu if the catalog is empty. Products are
// immutable after seeding, so this never updates existing rows.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	menu := []models.Product{
		{Name: "Idli", Price: 30, Description: "Fluffy steamed rice cakes", Emoji: "🍚", Category: "Breakfast"},
		{Name: "Masala Dosa", Price: 60, Description: "Crispy rice crepe with potato filling", Emoji: "🥞", Category: "Breakfast"},
		{Name: "Pongal", Price: 40, Description: "Traditional rice and lentil comfort food", Emoji: "🍲", Category: "Breakfast"},
		{Name: "Poori", Price: 50, Description: "Golden fried bread with curry", Emoji: "🥯", Category: "Breakfast"},
		{Name: "Idiyappam", Price: 35, Description: "Delicate string hoppers", Emoji: "🍝", Category: "Breakfast"},
		{Name: "Chicken Biryani", Price: 120, Description: "Aromatic basmati rice with tender chicken", Emoji: "🍛", Category: "Main Course"},
		{Name: "Chicken 65", Price: 100, Description: "Spicy fried chicken bites", Emoji: "🍗", Category: "Main Course"},
		{Name: "Paneer Butter Masala", Price: 100, Description: "Creamy paneer in rich tomato gravy", Emoji: "🧈", Category: "Main Course"},
		{Name: "Chapathi", Price: 30, Description: "Soft whole wheat flatbread", Emoji: "🫓", Category: "Main Course"},
		{Name: "Kerala Parota", Price: 40, Description: "Layered crispy flatbread", Emoji: "🥐", Category: "Main Course"},
		{Name: "Cold Coffee", Price: 50, Description: "Chilled coffee with ice cream", Emoji: "☕", Category: "Beverages"},
		{Name: "Masala Tea", Price: 20, Description: "Spiced Indian tea", Emoji: "🫖", Category: "Beverages"},
		{Name: "Fresh Juice", Price: 40, Description: "Seasonal fruit juice", Emoji: "🧃", Category: "Beverages"},
		{Name: "Sweet Lassi", Price: 35, Description: "Creamy yogurt drink", Emoji: "🥛", Category: "Beverages"},
	}

	if err := db.Create(&menu).Error; err != nil {
		return err
	}
	zap.L().Info("Seeded canteen menu", zap.Int("products", len(menu)))
	return nil
}
