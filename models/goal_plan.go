package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalActive GoalStatus = "ACTIVE"
	GoalPaused GoalStatus = "PAUSED"
)

// GoalPlan holds a user's daily macro targets. At most one plan per
// user is ACTIVE at any committed state; the goal service enforces
// this inside its create/activate transactions.
type GoalPlan struct {
	gorm.Model
	UserID   uint       `gorm:"uniqueIndex:idx_goal_plans_user_name;not null" json:"userId"`
	GoalName string     `gorm:"uniqueIndex:idx_goal_plans_user_name;not null" json:"goalName"`
	Status   GoalStatus `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`

	CalorieGoal decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"calorieGoal"`
	ProteinGoal decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"proteinGoal"`
	CarbGoal    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"carbGoal"`
	FatGoal     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"fatGoal"`
}
