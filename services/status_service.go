package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elonavr/FitTrack-API/cache"
	"github.com/elonavr/FitTrack-API/models"
)

// The status cache is correctness-sensitive: every write that feeds the
// computation invalidates it, and the short TTL bounds staleness even
// if an invalidation is lost.
const dailyStatusTTL = 10 * time.Minute

func dailyStatusKey(userID uint) string {
	return fmt.Sprintf("dailyStatus:%d", userID)
}

// StatusService aggregates consumption since the user's last reset and
// compares it against the active goal plan.
type StatusService struct {
	db    *gorm.DB
	cache cache.Store
}

func NewStatusService(db *gorm.DB, c cache.Store) *StatusService {
	return &StatusService{db: db, cache: c}
}

// GetStatus returns the user's daily status, read through the cache.
func (s *StatusService) GetStatus(ctx context.Context, userID uint) (*models.DailyStatus, error) {
	key := dailyStatusKey(userID)
	var cached models.DailyStatus
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("cache: get %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	status, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, status, dailyStatusTTL); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
	return status, nil
}

// Recompute replaces the cached status after a write. The stale entry
// is dropped before the recompute read, not after: the triggering write
// has already committed, so even if the read fails the pre-write value
// must not keep answering until its TTL runs out.
func (s *StatusService) Recompute(ctx context.Context, userID uint) (*models.DailyStatus, error) {
	key := dailyStatusKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("cache: delete %s: %v", key, err)
	}

	status, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, status, dailyStatusTTL); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
	return status, nil
}

type consumedSums struct {
	Calories decimal.Decimal
	Protein  decimal.Decimal
	Carb     decimal.Decimal
	Fat      decimal.Decimal
}

func (s *StatusService) compute(ctx context.Context, userID uint) (*models.DailyStatus, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "last_manual_reset").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "user"}
	}
	if err != nil {
		return nil, &StoreError{Op: "load reset boundary", Err: err}
	}

	// Stored values are already rounded to 2 places; the sum is exact
	// and is not rounded again.
	var sums consumedSums
	err = s.db.WithContext(ctx).Model(&models.Meal{}).
		Select("COALESCE(SUM(calories_consumed), 0) AS calories, " +
			"COALESCE(SUM(protein_consumed), 0) AS protein, " +
			"COALESCE(SUM(carb_consumed), 0) AS carb, " +
			"COALESCE(SUM(fat_consumed), 0) AS fat").
		Where("user_id = ? AND created_at >= ?", userID, user.LastManualReset).
		Scan(&sums).Error
	if err != nil {
		return nil, &StoreError{Op: "sum meal entries", Err: err}
	}

	// No active plan means zero targets; consumption is still reported.
	var goal models.GoalPlan
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.GoalActive).
		First(&goal).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &StoreError{Op: "load active goal plan", Err: err}
	}

	return &models.DailyStatus{
		CaloriesConsumed:  sums.Calories,
		CaloriesGoal:      goal.CalorieGoal,
		CaloriesRemaining: goal.CalorieGoal.Sub(sums.Calories),

		ProteinConsumed:  sums.Protein,
		ProteinGoal:      goal.ProteinGoal,
		ProteinRemaining: goal.ProteinGoal.Sub(sums.Protein),

		CarbConsumed:  sums.Carb,
		CarbGoal:      goal.CarbGoal,
		CarbRemaining: goal.CarbGoal.Sub(sums.Carb),

		FatConsumed:  sums.Fat,
		FatGoal:      goal.FatGoal,
		FatRemaining: goal.FatGoal.Sub(sums.Fat),
	}, nil
}
