package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/testutil"
)

func buyFields(portfolioID uint) TransactionFields {
	return TransactionFields{
		PortfolioID:     portfolioID,
		StockName:       "AAPL",
		StockSector:     "Technology",
		TransactionTime: time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
		Type:            models.TransactionTypeBuy,
		NumShares:       decimal.NewFromInt(25),
		Price:           decimal.RequireFromString("182.50"),
		Currency:        "USD",
		Execution:       models.ExecutionFIFO,
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("owner_on_personal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

		tx, err := svc.CreateTransaction(owner.ID, buyFields(portfolio.ID))
		testutil.AssertNoError(t, err)

		if tx.PortfolioID != portfolio.ID {
			t.Errorf("expected portfolio %d, got %d", portfolio.ID, tx.PortfolioID)
		}
		if !tx.NumShares.Equal(decimal.NewFromInt(25)) {
			t.Errorf("expected 25 shares, got %s", tx.NumShares)
		}
	})

	t.Run("manager_on_managed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		investor := testutil.CreateTestUser(t, db)
		manager := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestManagedPortfolio(t, db, investor.ID, manager.ID, true)

		_, err := svc.CreateTransaction(manager.ID, buyFields(portfolio.ID))
		testutil.AssertNoError(t, err)
	})

	t.Run("investor_denied_on_managed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		investor := testutil.CreateTestUser(t, db)
		manager := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestManagedPortfolio(t, db, investor.ID, manager.ID, true)

		_, err := svc.CreateTransaction(investor.ID, buyFields(portfolio.ID))
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("missing_portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.CreateTransaction(user.ID, buyFields(99999))
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})

	t.Run("stores_commissions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

		fields := buyFields(portfolio.ID)
		commissions := decimal.RequireFromString("4.95")
		fields.Commissions = &commissions

		tx, err := svc.CreateTransaction(owner.ID, fields)
		testutil.AssertNoError(t, err)
		if tx.Commissions == nil || !tx.Commissions.Equal(commissions) {
			t.Errorf("expected commissions 4.95, got %v", tx.Commissions)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("owner_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)
		tx := testutil.CreateTestTransaction(t, db, portfolio.ID)

		fields := buyFields(portfolio.ID)
		fields.Type = models.TransactionTypeSell
		fields.NumShares = decimal.NewFromInt(5)

		got, err := svc.UpdateTransaction(tx.ID, owner.ID, fields)
		testutil.AssertNoError(t, err)

		if got.Type != models.TransactionTypeSell {
			t.Errorf("expected type sell, got %s", got.Type)
		}
		if !got.NumShares.Equal(decimal.NewFromInt(5)) {
			t.Errorf("expected 5 shares, got %s", got.NumShares)
		}
	})

	t.Run("investor_denied_on_managed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		investor := testutil.CreateTestUser(t, db)
		manager := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestManagedPortfolio(t, db, investor.ID, manager.ID, true)
		tx := testutil.CreateTestTransaction(t, db, portfolio.ID)

		_, err := svc.UpdateTransaction(tx.ID, investor.ID, buyFields(portfolio.ID))
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("portfolio_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		first := testutil.CreateTestPortfolio(t, db, owner.ID)
		second := testutil.CreateTestPortfolio(t, db, owner.ID)
		tx := testutil.CreateTestTransaction(t, db, first.ID)

		// The transaction belongs to another portfolio than the one named
		// in the payload, so it is reported as absent rather than moved.
		_, err := svc.UpdateTransaction(tx.ID, owner.ID, buyFields(second.ID))
		testutil.AssertAppError(t, err, "TRANSACTION_MISMATCH")
	})

	t.Run("missing_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

		_, err := svc.UpdateTransaction(99999, owner.ID, buyFields(portfolio.ID))
		testutil.AssertAppError(t, err, "TRANSACTION_MISMATCH")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("owner_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)
		tx := testutil.CreateTestTransaction(t, db, portfolio.ID)

		testutil.AssertNoError(t, svc.DeleteTransaction(tx.ID, owner.ID))

		var count int64
		db.Model(&models.Transaction{}).Where("id = ?", tx.ID).Count(&count)
		if count != 0 {
			t.Error("expected transaction removed")
		}
	})

	t.Run("investor_denied_on_managed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		investor := testutil.CreateTestUser(t, db)
		manager := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestManagedPortfolio(t, db, investor.ID, manager.ID, true)
		tx := testutil.CreateTestTransaction(t, db, portfolio.ID)

		testutil.AssertAppError(t, svc.DeleteTransaction(tx.ID, investor.ID), "FORBIDDEN")
		testutil.AssertNoError(t, svc.DeleteTransaction(tx.ID, manager.ID))
	})

	t.Run("missing_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		testutil.AssertAppError(t, svc.DeleteTransaction(99999, owner.ID), "TRANSACTION_NOT_FOUND")
	})
}

func TestGetPortfolioTransactions(t *testing.T) {
	t.Run("viewer_lists_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

		older := buyFields(portfolio.ID)
		older.TransactionTime = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		newer := buyFields(portfolio.ID)
		newer.TransactionTime = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateTransaction(owner.ID, older)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransaction(owner.ID, newer)
		testutil.AssertNoError(t, err)

		page, err := svc.GetPortfolioTransactions(portfolio.ID, owner.ID, pagination.PageRequest{Page: 1, PageSize: 10})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 2 || len(page.Data) != 2 {
			t.Fatalf("expected 2 transactions, got total=%d items=%d", page.TotalItems, len(page.Data))
		}
		if !page.Data[0].TransactionTime.After(page.Data[1].TransactionTime) {
			t.Error("expected newest transaction first")
		}
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		owner := testutil.CreateTestUser(t, db)
		stranger := testutil.CreateTestUser(t, db)
		portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

		_, err := svc.GetPortfolioTransactions(portfolio.ID, stranger.ID, pagination.PageRequest{Page: 1, PageSize: 10})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}
