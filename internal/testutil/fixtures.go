package testutil

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"paisa/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user on the growth preset with the
// default round-up rule (nearest 10, bounds 1..50).
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:          fmt.Sprintf("user%d@test.com", nextID()),
		Name:           "Test User",
		Preset:         "growth",
		RoundToNearest: 10,
		MinRoundup:     1,
		MaxRoundup:     50,
		IsActive:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction stores one transaction for the user.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, amount float64, direction models.TransactionDirection) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		Amount:    amount,
		Direction: direction,
		Merchant:  fmt.Sprintf("Merchant %d", nextID()),
		Date:      time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestLedgerEntry appends one ledger entry for the user.
func CreateTestLedgerEntry(t *testing.T, db *gorm.DB, userID string, amount float64, entryType models.LedgerEntryType) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		UserID: userID,
		Amount: amount,
		Type:   entryType,
		Date:   time.Now(),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test ledger entry: %v", err)
	}
	return entry
}

// CreateTestHolding stores a holding for the user.
func CreateTestHolding(t *testing.T, db *gorm.DB, userID, symbol string, units, avgCost float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		UserID:  userID,
		Symbol:  symbol,
		Units:   units,
		AvgCost: avgCost,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// merchants used by RandomTransactions.
var merchants = []string{"Swiggy", "BigBasket", "Chai Point", "IRCTC", "Zepto", "DMart", "Uber"}

// RandomTransactions generates n plausible debit transactions with amounts in
// [20, 2020), deterministically from seed. Handy for bulk ingestion tests.
func RandomTransactions(n int, seed int64) []models.Transaction {
	rng := rand.New(rand.NewSource(seed))
	txs := make([]models.Transaction, n)
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := range txs {
		txs[i] = models.Transaction{
			Amount:    20 + rng.Float64()*2000,
			Direction: models.TransactionDebit,
			Merchant:  merchants[rng.Intn(len(merchants))],
			Date:      base.Add(time.Duration(i) * time.Hour),
		}
	}
	return txs
}
