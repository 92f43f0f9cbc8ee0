package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/services"
)

type mockTransactionService struct {
	createTransactionFn        func(principalID uint, fields services.TransactionFields) (*models.Transaction, error)
	updateTransactionFn        func(transactionID, principalID uint, fields services.TransactionFields) (*models.Transaction, error)
	deleteTransactionFn        func(transactionID, principalID uint) error
	getPortfolioTransactionsFn func(portfolioID, principalID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func (m *mockTransactionService) CreateTransaction(principalID uint, fields services.TransactionFields) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(principalID, fields)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(transactionID, principalID uint, fields services.TransactionFields) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(transactionID, principalID, fields)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(transactionID, principalID uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(transactionID, principalID)
	}
	return nil
}

func (m *mockTransactionService) GetPortfolioTransactions(portfolioID, principalID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.getPortfolioTransactionsFn != nil {
		return m.getPortfolioTransactionsFn(portfolioID, principalID, page)
	}
	return &pagination.PageResponse[models.Transaction]{}, nil
}

func setupTransactionRouter(handler *TransactionHandler, uid uint) *gin.Engine {
	r := gin.New()
	authed := r.Group("", injectUserID(uid))
	authed.POST("/transactions", handler.CreateTransaction)
	authed.PUT("/transactions/:id", handler.UpdateTransaction)
	authed.DELETE("/transactions/:id", handler.DeleteTransaction)
	authed.GET("/portfolios/:id/transactions", handler.GetPortfolioTransactions)
	return r
}

const validTransactionBody = `{
	"portfolio_id": 4,
	"stock_name": "AAPL",
	"stock_sector": "Technology",
	"transaction_time": "2024-03-15T14:30:00Z",
	"transaction_type": "buy",
	"num_shares": "25",
	"price": "182.50",
	"currency": "USD",
	"execution": "fifo"
}`

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 with parsed decimals", func(t *testing.T) {
		var gotFields services.TransactionFields
		transactionSvc := &mockTransactionService{
			createTransactionFn: func(_ uint, fields services.TransactionFields) (*models.Transaction, error) {
				gotFields = fields
				return &models.Transaction{
					Base:        models.Base{ID: 1},
					PortfolioID: fields.PortfolioID,
					StockName:   fields.StockName,
					NumShares:   fields.NumShares,
					Price:       fields.Price,
				}, nil
			},
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "POST", "/transactions", validTransactionBody)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotFields.NumShares.Equal(decimal.NewFromInt(25)) {
			t.Errorf("expected 25 shares, got %s", gotFields.NumShares)
		}
		if !gotFields.Price.Equal(decimal.RequireFromString("182.50")) {
			t.Errorf("expected price 182.50, got %s", gotFields.Price)
		}
	})

	t.Run("accepts plain date", func(t *testing.T) {
		transactionSvc := &mockTransactionService{}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "POST", "/transactions", `{
			"portfolio_id": 4,
			"stock_name": "MSFT",
			"transaction_time": "2024-03-15",
			"transaction_type": "sell",
			"num_shares": "10",
			"price": "400",
			"currency": "USD",
			"execution": "lifo"
		}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on unknown transaction type", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		body := `{
			"portfolio_id": 4,
			"stock_name": "AAPL",
			"transaction_time": "2024-03-15",
			"transaction_type": "gift",
			"num_shares": "1",
			"price": "1",
			"currency": "USD",
			"execution": "fifo"
		}`
		rec := doRequest(r, "POST", "/transactions", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on non-decimal num_shares", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		body := `{
			"portfolio_id": 4,
			"stock_name": "AAPL",
			"transaction_time": "2024-03-15",
			"transaction_type": "buy",
			"num_shares": "lots",
			"price": "1",
			"currency": "USD",
			"execution": "fifo"
		}`
		rec := doRequest(r, "POST", "/transactions", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown currency", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		body := `{
			"portfolio_id": 4,
			"stock_name": "AAPL",
			"transaction_time": "2024-03-15",
			"transaction_type": "buy",
			"num_shares": "1",
			"price": "1",
			"currency": "ZZZ",
			"execution": "fifo"
		}`
		rec := doRequest(r, "POST", "/transactions", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 403 when service denies", func(t *testing.T) {
		transactionSvc := &mockTransactionService{
			createTransactionFn: func(_ uint, _ services.TransactionFields) (*models.Transaction, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "POST", "/transactions", validTransactionBody)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		transactionSvc := &mockTransactionService{
			updateTransactionFn: func(transactionID, _ uint, fields services.TransactionFields) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: transactionID},
					PortfolioID: fields.PortfolioID,
					StockName:   fields.StockName,
				}, nil
			},
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "PUT", "/transactions/8", validTransactionBody)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		transaction := parseJSON(t, rec)["transaction"].(map[string]any)
		if transaction["id"] != float64(8) {
			t.Errorf("expected id 8, got %v", transaction["id"])
		}
	})

	t.Run("returns 404 on portfolio mismatch", func(t *testing.T) {
		transactionSvc := &mockTransactionService{
			updateTransactionFn: func(_, _ uint, _ services.TransactionFields) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionMismatch
			},
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "PUT", "/transactions/8", validTransactionBody)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_MISMATCH")
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "PUT", "/transactions/abc", validTransactionBody)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		transactionSvc := &mockTransactionService{
			deleteTransactionFn: func(_, _ uint) error { return nil },
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "DELETE", "/transactions/8", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		transactionSvc := &mockTransactionService{
			deleteTransactionFn: func(_, _ uint) error { return apperrors.ErrTransactionNotFound },
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "DELETE", "/transactions/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetPortfolioTransactions(t *testing.T) {
	t.Run("returns 200 with paginated list", func(t *testing.T) {
		transactionSvc := &mockTransactionService{
			getPortfolioTransactionsFn: func(portfolioID, _ uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				page.Defaults()
				result := pagination.NewPageResponse([]models.Transaction{
					{Base: models.Base{ID: 1}, PortfolioID: portfolioID, StockName: "AAPL"},
				}, page.Page, page.PageSize, 1)
				return &result, nil
			},
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "GET", "/portfolios/4/transactions?page=1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(1) {
			t.Errorf("expected 1 total item, got %v", result["total_items"])
		}
	})

	t.Run("returns 403 for stranger", func(t *testing.T) {
		transactionSvc := &mockTransactionService{
			getPortfolioTransactionsFn: func(_, _ uint, _ pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				return nil, apperrors.ErrForbidden
			},
		}
		handler := NewTransactionHandler(transactionSvc, &mockAuditService{})
		r := setupTransactionRouter(handler, 1)

		rec := doRequest(r, "GET", "/portfolios/4/transactions", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}
