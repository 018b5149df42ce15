package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elonavr/FitTrack-API/models"
)

var oneServing = decimal.NewFromInt(100)

type MealService struct {
	db     *gorm.DB
	foods  *FoodService
	status *StatusService
}

func NewMealService(db *gorm.DB, foods *FoodService, status *StatusService) *MealService {
	return &MealService{db: db, foods: foods, status: status}
}

// MealInput is one requested ledger entry. Quantity is a percentage of
// one serving (100 = one full serving, 50 = half). There is no upper
// bound; the unit convention is inherited from the clients.
type MealInput struct {
	FoodItemID uint            `json:"foodItemId"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// LogMeals validates, computes and persists a batch of ledger entries,
// then refreshes the user's cached daily status. The batch is
// all-or-nothing: a bad quantity or an unknown food item aborts it
// before any row is written.
func (s *MealService) LogMeals(ctx context.Context, userID uint, inputs []MealInput) ([]models.Meal, *models.DailyStatus, error) {
	if len(inputs) == 0 {
		return nil, nil, &ValidationError{Msg: "at least one meal entry is required"}
	}
	// The quantity column holds two fractional digits, so the input is
	// rounded once up front and everything downstream derives from the
	// value that will actually be persisted.
	quantities := make([]decimal.Decimal, 0, len(inputs))
	for _, in := range inputs {
		if in.FoodItemID == 0 {
			return nil, nil, &ValidationError{Msg: "every meal entry needs a foodItemId"}
		}
		qty := in.Quantity.Round(2)
		if !qty.IsPositive() {
			return nil, nil, &ValidationError{Msg: "quantity must be greater than zero"}
		}
		quantities = append(quantities, qty)
	}

	meals := make([]models.Meal, 0, len(inputs))
	for i, in := range inputs {
		item, err := s.foods.Get(ctx, userID, in.FoodItemID)
		if err != nil {
			return nil, nil, err
		}

		// consumed = perServing × quantity/100, rounded half-up to two
		// places exactly once. The stored value is what aggregation
		// sums later.
		ratio := quantities[i].Div(oneServing)
		meals = append(meals, models.Meal{
			UserID:           userID,
			FoodItemID:       item.ID,
			Quantity:         quantities[i],
			CaloriesConsumed: item.CaloriesPerServing.Mul(ratio).Round(2),
			ProteinConsumed:  item.ProteinPerServing.Mul(ratio).Round(2),
			CarbConsumed:     item.CarbPerServing.Mul(ratio).Round(2),
			FatConsumed:      item.FatPerServing.Mul(ratio).Round(2),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&meals).Error
	})
	if err != nil {
		return nil, nil, &StoreError{Op: "create meal entries", Err: err}
	}

	status, err := s.status.Recompute(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return meals, status, nil
}
