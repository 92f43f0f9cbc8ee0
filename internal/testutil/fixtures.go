package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stockfolio/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleInvestor,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates a user with the administrator role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("role", models.RoleAdministrator).Error; err != nil {
		t.Fatalf("failed to promote test user: %v", err)
	}
	user.Role = models.RoleAdministrator
	return user
}

// CreateTestPortfolio creates a personal portfolio owned by the given user.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID uint) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		Name:      fmt.Sprintf("Portfolio %d", nextID()),
		Color:     "1a2b3c",
		UserID:    userID,
		Confirmed: true,
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestManagedPortfolio creates a portfolio owned by the investor and
// managed by the manager, confirmed or pending.
func CreateTestManagedPortfolio(t *testing.T, db *gorm.DB, investorID, managerID uint, confirmed bool) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		Name:      fmt.Sprintf("Managed %d", nextID()),
		Color:     "c0ffee",
		UserID:    investorID,
		PMID:      &managerID,
		Confirmed: confirmed,
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test managed portfolio: %v", err)
	}
	return portfolio
}

// CreateTestTransaction creates a buy transaction in the given portfolio.
func CreateTestTransaction(t *testing.T, db *gorm.DB, portfolioID uint) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		PortfolioID:     portfolioID,
		StockName:       fmt.Sprintf("TST%d", nextID()),
		TransactionTime: time.Now(),
		Type:            models.TransactionTypeBuy,
		NumShares:       decimal.NewFromInt(10),
		Price:           decimal.NewFromFloat(99.95),
		Currency:        "USD",
		Execution:       models.ExecutionFIFO,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
