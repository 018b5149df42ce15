package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Meal is one immutable ledger row: a food item eaten at some quantity,
// with the macro contribution computed and rounded at write time.
// Aggregation sums these stored values as-is, it never re-rounds.
type Meal struct {
	gorm.Model
	UserID     uint `gorm:"index;not null" json:"userId"`
	FoodItemID uint `gorm:"not null" json:"foodItemId"`

	// Quantity is a serving-scaling percentage: 100 = one full serving.
	Quantity decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"quantity"`

	CaloriesConsumed decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"caloriesConsumed"`
	ProteinConsumed  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"proteinConsumed"`
	CarbConsumed     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"carbConsumed"`
	FatConsumed      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"fatConsumed"`
}

// DailyStatus is derived from the meal ledger, the active goal plan and
// the user's reset boundary. It is cached transiently, never persisted.
type DailyStatus struct {
	CaloriesConsumed  decimal.Decimal `json:"caloriesConsumed"`
	CaloriesGoal      decimal.Decimal `json:"caloriesGoal"`
	CaloriesRemaining decimal.Decimal `json:"caloriesRemaining"`

	ProteinConsumed  decimal.Decimal `json:"proteinConsumed"`
	ProteinGoal      decimal.Decimal `json:"proteinGoal"`
	ProteinRemaining decimal.Decimal `json:"proteinRemaining"`

	CarbConsumed  decimal.Decimal `json:"carbConsumed"`
	CarbGoal      decimal.Decimal `json:"carbGoal"`
	CarbRemaining decimal.Decimal `json:"carbRemaining"`

	FatConsumed  decimal.Decimal `json:"fatConsumed"`
	FatGoal      decimal.Decimal `json:"fatGoal"`
	FatRemaining decimal.Decimal `json:"fatRemaining"`
}
