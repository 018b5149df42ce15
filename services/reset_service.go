package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/elonavr/FitTrack-API/cache"
	"github.com/elonavr/FitTrack-API/models"
)

// ResetService advances the user's reset boundary, which closes the
// current tracking day. Earlier meal entries stay in the ledger but
// fall out of the aggregation window.
type ResetService struct {
	db    *gorm.DB
	cache cache.Store
}

func NewResetService(db *gorm.DB, c cache.Store) *ResetService {
	return &ResetService{db: db, cache: c}
}

func (s *ResetService) Reset(ctx context.Context, userID uint) (time.Time, error) {
	now := time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_manual_reset", now)
	if res.Error != nil {
		return time.Time{}, &StoreError{Op: "reset tracking window", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return time.Time{}, &NotFoundError{Entity: "user"}
	}

	key := dailyStatusKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("cache: delete %s: %v", key, err)
	}
	return now, nil
}
