package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elonavr/FitTrack-API/cache"
	"github.com/elonavr/FitTrack-API/models"
)

// GoalService owns the goal plan lifecycle. Its one non-trivial
// property is exclusivity: a user never has more than one ACTIVE plan.
// Create and Activate therefore pause competitors and write the target
// inside a single transaction, so no committed state in between is
// visible to readers.
type GoalService struct {
	db    *gorm.DB
	cache cache.Store
}

func NewGoalService(db *gorm.DB, c cache.Store) *GoalService {
	return &GoalService{db: db, cache: c}
}

// Create inserts a new plan as ACTIVE, demoting any currently active
// plan of the user in the same transaction. A duplicate name rolls the
// whole transaction back, including the demotion.
func (s *GoalService) Create(ctx context.Context, userID uint, goalName string, calorie, protein, carb, fat decimal.Decimal) (*models.GoalPlan, error) {
	goalName = strings.TrimSpace(goalName)
	if goalName == "" {
		return nil, &ValidationError{Msg: "goal name must not be empty"}
	}
	for _, v := range []decimal.Decimal{calorie, protein, carb, fat} {
		if !v.IsPositive() {
			return nil, &ValidationError{Msg: "all macro goals must be positive"}
		}
	}

	plan := models.GoalPlan{
		UserID:      userID,
		GoalName:    goalName,
		Status:      models.GoalActive,
		CalorieGoal: calorie,
		ProteinGoal: protein,
		CarbGoal:    carb,
		FatGoal:     fat,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GoalPlan{}).
			Where("user_id = ? AND status = ?", userID, models.GoalActive).
			Update("status", models.GoalPaused).Error; err != nil {
			return err
		}
		return tx.Create(&plan).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, &DuplicateNameError{Entity: "goal plan", Name: goalName}
	}
	if err != nil {
		return nil, &StoreError{Op: "create goal plan", Err: err}
	}

	// The transition is committed at this point, so the old status
	// entry goes away even if the defensive check below fails.
	s.invalidateStatus(ctx, userID)
	if err := s.assertSingleActive(ctx, userID); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Activate makes the given plan the user's ACTIVE one, pausing every
// other active plan in the same transaction.
func (s *GoalService) Activate(ctx context.Context, userID, goalID uint) (*models.GoalPlan, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GoalPlan{}).
			Where("user_id = ? AND status = ? AND id <> ?", userID, models.GoalActive, goalID).
			Update("status", models.GoalPaused).Error; err != nil {
			return err
		}
		res := tx.Model(&models.GoalPlan{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Update("status", models.GoalActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Entity: "goal plan"}
		}
		return nil
	})
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nil, nf
	}
	if err != nil {
		return nil, &StoreError{Op: "activate goal plan", Err: err}
	}

	s.invalidateStatus(ctx, userID)
	if err := s.assertSingleActive(ctx, userID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, goalID)
}

// Pause sets the plan to PAUSED regardless of its current status.
func (s *GoalService) Pause(ctx context.Context, userID, goalID uint) (*models.GoalPlan, error) {
	res := s.db.WithContext(ctx).Model(&models.GoalPlan{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Update("status", models.GoalPaused)
	if res.Error != nil {
		return nil, &StoreError{Op: "pause goal plan", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &NotFoundError{Entity: "goal plan"}
	}

	s.invalidateStatus(ctx, userID)
	return s.Get(ctx, userID, goalID)
}

// Delete removes the plan permanently. Past meal entries are untouched.
func (s *GoalService) Delete(ctx context.Context, userID, goalID uint) error {
	res := s.db.WithContext(ctx).Unscoped().
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.GoalPlan{})
	if res.Error != nil {
		return &StoreError{Op: "delete goal plan", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "goal plan"}
	}

	s.invalidateStatus(ctx, userID)
	return nil
}

func (s *GoalService) List(ctx context.Context, userID uint) ([]models.GoalPlan, error) {
	var plans []models.GoalPlan
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return nil, &StoreError{Op: "list goal plans", Err: err}
	}
	return plans, nil
}

func (s *GoalService) Get(ctx context.Context, userID, goalID uint) (*models.GoalPlan, error) {
	var plan models.GoalPlan
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "goal plan"}
	}
	if err != nil {
		return nil, &StoreError{Op: "get goal plan", Err: err}
	}
	return &plan, nil
}

// assertSingleActive is a defensive check after a transition. With the
// transactions above it should be unreachable.
func (s *GoalService) assertSingleActive(ctx context.Context, userID uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.GoalPlan{}).
		Where("user_id = ? AND status = ?", userID, models.GoalActive).
		Count(&n).Error; err != nil {
		return &StoreError{Op: "count active goal plans", Err: err}
	}
	if n > 1 {
		return &InvariantError{Msg: fmt.Sprintf("user %d has %d active goal plans", userID, n)}
	}
	return nil
}

func (s *GoalService) invalidateStatus(ctx context.Context, userID uint) {
	key := dailyStatusKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("cache: delete %s: %v", key, err)
	}
}
