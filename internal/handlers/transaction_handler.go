package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
	"stockfolio/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest represents the create/update transaction payload.
// Decimal fields travel as strings to avoid float rounding on the wire.
type TransactionRequest struct {
	PortfolioID     uint   `json:"portfolio_id" binding:"required"`
	StockName       string `json:"stock_name" binding:"required,min=1,max=20"`
	StockSector     string `json:"stock_sector" binding:"max=20"`
	TransactionTime string `json:"transaction_time" binding:"required"`
	TransactionType string `json:"transaction_type" binding:"required,transaction_type"`
	NumShares       string `json:"num_shares" binding:"required,decimal"`
	Price           string `json:"price" binding:"required,decimal"`
	Currency        string `json:"currency" binding:"required,iso4217"`
	Execution       string `json:"execution" binding:"required,execution_type"`
	Commissions     string `json:"commissions" binding:"omitempty,decimal"`
	Notes           string `json:"notes"`
}

// toFields converts a bound request into service-layer fields. Binding
// has already validated the decimal and time formats.
func (r *TransactionRequest) toFields() (services.TransactionFields, error) {
	transactionTime, err := parseFlexibleTime(r.TransactionTime)
	if err != nil {
		return services.TransactionFields{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	numShares, err := decimal.NewFromString(r.NumShares)
	if err != nil {
		return services.TransactionFields{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid num_shares")
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return services.TransactionFields{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid price")
	}

	var commissions *decimal.Decimal
	if r.Commissions != "" {
		d, err := decimal.NewFromString(r.Commissions)
		if err != nil {
			return services.TransactionFields{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid commissions")
		}
		commissions = &d
	}

	return services.TransactionFields{
		PortfolioID:     r.PortfolioID,
		StockName:       r.StockName,
		StockSector:     r.StockSector,
		TransactionTime: transactionTime,
		Type:            models.TransactionType(r.TransactionType),
		NumShares:       numShares,
		Price:           price,
		Currency:        r.Currency,
		Execution:       models.ExecutionType(r.Execution),
		Commissions:     commissions,
		Notes:           r.Notes,
	}, nil
}

// parseFlexibleTime accepts RFC3339 timestamps or plain dates.
func parseFlexibleTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// CreateTransaction records a new transaction
// @Summary     Create a transaction
// @Description Record a stock transaction against a portfolio. Manager-only when the portfolio is managed, owner-only otherwise.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields, err := req.toFields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"portfolio_id": req.PortfolioID, "stock_name": req.StockName, "type": req.TransactionType})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// UpdateTransaction rewrites a transaction
// @Summary     Update a transaction
// @Description Update a transaction. It must belong to the portfolio named in the payload.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio or transaction not found, or mismatch"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields, err := req.toFields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(id, userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"portfolio_id": req.PortfolioID})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction, authorized against its parent portfolio's current management state
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id, userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetPortfolioTransactions lists a portfolio's transactions
// @Summary     List portfolio transactions
// @Description Get a paginated list of a portfolio's transactions, newest first. Investor or manager only.
// @Tags        portfolios,transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Portfolio ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/transactions [get]
func (h *TransactionHandler) GetPortfolioTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.GetPortfolioTransactions(id, userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
