package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elonavr/FitTrack-API/cache"
	"github.com/elonavr/FitTrack-API/models"
)

// Catalog entries change rarely, so the item and list caches get a long TTL.
const foodItemCacheTTL = 24 * time.Hour

type FoodService struct {
	db    *gorm.DB
	cache cache.Store
}

func NewFoodService(db *gorm.DB, c cache.Store) *FoodService {
	return &FoodService{db: db, cache: c}
}

func foodItemKey(userID, itemID uint) string {
	return fmt.Sprintf("foodItem:%d:%d", userID, itemID)
}

func foodListKey(userID uint) string {
	return fmt.Sprintf("foodItems:%d", userID)
}

// Create inserts a new catalog entry. The name must be unique for the
// user; macro values must be non-negative.
func (s *FoodService) Create(ctx context.Context, userID uint, foodName string, calories, protein, carb, fat decimal.Decimal) (*models.FoodItem, error) {
	foodName = strings.TrimSpace(foodName)
	if foodName == "" {
		return nil, &ValidationError{Msg: "food name must not be empty"}
	}
	for _, v := range []decimal.Decimal{calories, protein, carb, fat} {
		if v.IsNegative() {
			return nil, &ValidationError{Msg: "per-serving values must not be negative"}
		}
	}

	item := models.FoodItem{
		UserID:             userID,
		FoodName:           foodName,
		CaloriesPerServing: calories,
		ProteinPerServing:  protein,
		CarbPerServing:     carb,
		FatPerServing:      fat,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateNameError{Entity: "food item", Name: foodName}
		}
		return nil, &StoreError{Op: "create food item", Err: err}
	}

	// Cache writes are best-effort: a failure here never fails the
	// request, the next read just goes back to the store.
	if err := s.cache.Delete(ctx, foodListKey(userID)); err != nil {
		log.Printf("cache: delete %s: %v", foodListKey(userID), err)
	}
	if err := s.cache.Set(ctx, foodItemKey(userID, item.ID), item, foodItemCacheTTL); err != nil {
		log.Printf("cache: set %s: %v", foodItemKey(userID, item.ID), err)
	}
	return &item, nil
}

// Get returns one catalog entry, read through the single-item cache.
func (s *FoodService) Get(ctx context.Context, userID, itemID uint) (*models.FoodItem, error) {
	key := foodItemKey(userID, itemID)
	var cached models.FoodItem
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("cache: get %s: %v", key, err)
	} else if hit {
		return &cached, nil
	}

	var item models.FoodItem
	err = s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "food item"}
	}
	if err != nil {
		return nil, &StoreError{Op: "get food item", Err: err}
	}

	if err := s.cache.Set(ctx, key, item, foodItemCacheTTL); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
	return &item, nil
}

// ListAll returns every catalog entry of the user, read through the
// list cache. No ordering is promised.
func (s *FoodService) ListAll(ctx context.Context, userID uint) ([]models.FoodItem, error) {
	key := foodListKey(userID)
	var cached []models.FoodItem
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("cache: get %s: %v", key, err)
	} else if hit {
		return cached, nil
	}

	var items []models.FoodItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, &StoreError{Op: "list food items", Err: err}
	}

	if err := s.cache.Set(ctx, key, items, foodItemCacheTTL); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
	return items, nil
}
