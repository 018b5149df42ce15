package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FoodItem is a catalog entry with per-serving nutrition values.
// Items are immutable after creation and scoped to their owner;
// the name is unique per user.
type FoodItem struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex:idx_food_items_user_name;not null" json:"userId"`
	FoodName string `gorm:"uniqueIndex:idx_food_items_user_name;not null" json:"foodName"`

	CaloriesPerServing decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"caloriesPerServing"`
	ProteinPerServing  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"proteinPerServing"`
	CarbPerServing     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"carbPerServing"`
	FatPerServing      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"fatPerServing"`
}
