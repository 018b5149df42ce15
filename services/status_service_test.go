package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/elonavr/FitTrack-API/models"
)

func TestGetStatusAgainstActiveGoal(t *testing.T) {
	db, foods, meals, status, user := newMealFixture(t)
	ctx := context.Background()
	goals := NewGoalService(db, newTestCache())

	if _, err := goals.Create(ctx, user.ID, "cut", dec(t, "2000"), dec(t, "150"), dec(t, "200"), dec(t, "70")); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	item, err := foods.Create(ctx, user.ID, "bowl", dec(t, "500"), dec(t, "30"), dec(t, "55"), dec(t, "18"))
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if _, _, err := meals.LogMeals(ctx, user.ID, []MealInput{{FoodItemID: item.ID, Quantity: dec(t, "100")}}); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	got, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	wantDecimal(t, "CaloriesConsumed", got.CaloriesConsumed, dec(t, "500.00"))
	wantDecimal(t, "CaloriesGoal", got.CaloriesGoal, dec(t, "2000"))
	wantDecimal(t, "CaloriesRemaining", got.CaloriesRemaining, dec(t, "1500.00"))
	wantDecimal(t, "ProteinRemaining", got.ProteinRemaining, dec(t, "120.00"))
}

func TestGetStatusWithoutActiveGoal(t *testing.T) {
	_, foods, meals, status, user := newMealFixture(t)
	ctx := context.Background()

	item, err := foods.Create(ctx, user.ID, "bowl", dec(t, "500"), dec(t, "30"), dec(t, "55"), dec(t, "18"))
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if _, _, err := meals.LogMeals(ctx, user.ID, []MealInput{{FoodItemID: item.ID, Quantity: dec(t, "100")}}); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	got, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	// Consumption is still reported; targets are zero and remaining
	// goes negative, not clamped.
	wantDecimal(t, "CaloriesConsumed", got.CaloriesConsumed, dec(t, "500.00"))
	wantDecimal(t, "CaloriesGoal", got.CaloriesGoal, dec(t, "0"))
	wantDecimal(t, "CaloriesRemaining", got.CaloriesRemaining, dec(t, "-500.00"))
}

func TestGetStatusUnknownUser(t *testing.T) {
	db := newTestDB(t)
	status := NewStatusService(db, newTestCache())

	var nf *NotFoundError
	if _, err := status.GetStatus(context.Background(), 999); !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestGetStatusReadsAreIdempotent(t *testing.T) {
	_, foods, meals, status, user := newMealFixture(t)
	ctx := context.Background()

	item, err := foods.Create(ctx, user.ID, "bowl", dec(t, "500"), dec(t, "30"), dec(t, "55"), dec(t, "18"))
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if _, _, err := meals.LogMeals(ctx, user.ID, []MealInput{{FoodItemID: item.ID, Quantity: dec(t, "150")}}); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	first, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Errorf("cache hit diverged from recomputed value:\nfirst:  %s\nsecond: %s", a, b)
	}
}

func TestGetStatusFallsBackToTTLWhenInvalidationMissed(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	ctx := context.Background()

	store := newTestCache()
	now := time.Now().UTC()
	store.Now = func() time.Time { return now }
	status := NewStatusService(db, store)

	if _, err := status.GetStatus(ctx, user.ID); err != nil {
		t.Fatalf("populate cache: %v", err)
	}

	// Insert a ledger row directly so no invalidation fires, simulating
	// a lost cache delete. The stale entry answers until its TTL runs
	// out; after that the read-through recomputes.
	if err := db.Create(&models.Meal{
		UserID:           user.ID,
		FoodItemID:       1,
		Quantity:         dec(t, "100"),
		CaloriesConsumed: dec(t, "500.00"),
		ProteinConsumed:  dec(t, "30.00"),
		CarbConsumed:     dec(t, "55.00"),
		FatConsumed:      dec(t, "18.00"),
	}).Error; err != nil {
		t.Fatalf("insert meal: %v", err)
	}

	stale, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("get status within TTL: %v", err)
	}
	wantDecimal(t, "stale CaloriesConsumed", stale.CaloriesConsumed, dec(t, "0"))

	now = now.Add(dailyStatusTTL + time.Minute)
	got, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("get status after TTL: %v", err)
	}
	wantDecimal(t, "CaloriesConsumed", got.CaloriesConsumed, dec(t, "500.00"))
}

func TestRecomputeDropsStaleEntryWhenReadFails(t *testing.T) {
	db := newTestDB(t)
	store := newTestCache()
	status := NewStatusService(db, store)
	user := seedUser(t, db, "a@example.com")
	ctx := context.Background()

	if _, err := status.GetStatus(ctx, user.ID); err != nil {
		t.Fatalf("populate cache: %v", err)
	}

	// The triggering write commits, then the store goes down before the
	// refresh read.
	if err := db.Create(&models.Meal{
		UserID:           user.ID,
		FoodItemID:       1,
		Quantity:         dec(t, "100"),
		CaloriesConsumed: dec(t, "500.00"),
		ProteinConsumed:  dec(t, "30.00"),
		CarbConsumed:     dec(t, "55.00"),
		FatConsumed:      dec(t, "18.00"),
	}).Error; err != nil {
		t.Fatalf("insert meal: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close sql.DB: %v", err)
	}

	if _, err := status.Recompute(ctx, user.ID); err == nil {
		t.Fatal("expected recompute to fail with the store down")
	}

	// A later read may fail or recompute, but the pre-write value must
	// be gone from the cache.
	var cached models.DailyStatus
	hit, err := store.Get(ctx, dailyStatusKey(user.ID), &cached)
	if err != nil {
		t.Fatalf("inspect cache: %v", err)
	}
	if hit {
		t.Errorf("pre-write status still cached after failed refresh: consumed=%s", cached.CaloriesConsumed)
	}
}

func TestResetExcludesPriorMeals(t *testing.T) {
	db, foods, meals, status, user := newMealFixture(t)
	ctx := context.Background()
	reset := NewResetService(db, status.cache)

	item, err := foods.Create(ctx, user.ID, "bowl", dec(t, "500"), dec(t, "30"), dec(t, "55"), dec(t, "18"))
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if _, _, err := meals.LogMeals(ctx, user.ID, []MealInput{{FoodItemID: item.ID, Quantity: dec(t, "100")}}); err != nil {
		t.Fatalf("log meal before reset: %v", err)
	}

	before, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("status before reset: %v", err)
	}
	wantDecimal(t, "calories before reset", before.CaloriesConsumed, dec(t, "500.00"))

	time.Sleep(10 * time.Millisecond)
	if _, err := reset.Reset(ctx, user.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	cleared, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("status after reset: %v", err)
	}
	wantDecimal(t, "calories after reset", cleared.CaloriesConsumed, dec(t, "0"))

	// Meals logged after the reset land in the new window.
	time.Sleep(10 * time.Millisecond)
	if _, _, err := meals.LogMeals(ctx, user.ID, []MealInput{{FoodItemID: item.ID, Quantity: dec(t, "50")}}); err != nil {
		t.Fatalf("log meal after reset: %v", err)
	}
	after, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("status after new meal: %v", err)
	}
	wantDecimal(t, "calories in new window", after.CaloriesConsumed, dec(t, "250.00"))
}

func TestGoalWritesInvalidateCachedStatus(t *testing.T) {
	db := newTestDB(t)
	store := newTestCache()
	status := NewStatusService(db, store)
	goals := NewGoalService(db, store)
	user := seedUser(t, db, "a@example.com")
	ctx := context.Background()

	first, err := goals.Create(ctx, user.ID, "cut", dec(t, "2000"), dec(t, "150"), dec(t, "200"), dec(t, "70"))
	if err != nil {
		t.Fatalf("create first goal: %v", err)
	}
	got, err := status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("status with first goal: %v", err)
	}
	wantDecimal(t, "CaloriesGoal", got.CaloriesGoal, dec(t, "2000"))

	// Creating a new plan swaps the comparison target; the cached
	// status from before must not be served.
	if _, err := goals.Create(ctx, user.ID, "bulk", dec(t, "3000"), dec(t, "180"), dec(t, "350"), dec(t, "90")); err != nil {
		t.Fatalf("create second goal: %v", err)
	}
	got, err = status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("status with second goal: %v", err)
	}
	wantDecimal(t, "CaloriesGoal after create", got.CaloriesGoal, dec(t, "3000"))

	if _, err := goals.Activate(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("activate first: %v", err)
	}
	got, err = status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("status after activate: %v", err)
	}
	wantDecimal(t, "CaloriesGoal after activate", got.CaloriesGoal, dec(t, "2000"))

	if _, err := goals.Pause(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("pause: %v", err)
	}
	got, err = status.GetStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("status after pause: %v", err)
	}
	wantDecimal(t, "CaloriesGoal after pause", got.CaloriesGoal, dec(t, "0"))
}

func TestResetUnknownUser(t *testing.T) {
	db := newTestDB(t)
	reset := NewResetService(db, newTestCache())

	var nf *NotFoundError
	if _, err := reset.Reset(context.Background(), 999); !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}
