package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"stockfolio/internal/authz"
	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
)

// transactionService handles transaction business logic. Authorization
// is always resolved against the parent portfolio's management state at
// the time of the call.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new transaction against a portfolio.
func (s *transactionService) CreateTransaction(principalID uint, fields TransactionFields) (*models.Transaction, error) {
	portfolio, err := s.findPortfolio(s.db, fields.PortfolioID)
	if err != nil {
		return nil, err
	}

	if err := authz.MutateTransaction(principalID, portfolio); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		PortfolioID:     fields.PortfolioID,
		StockName:       fields.StockName,
		StockSector:     fields.StockSector,
		TransactionTime: fields.TransactionTime,
		Type:            fields.Type,
		NumShares:       fields.NumShares,
		Price:           fields.Price,
		Currency:        fields.Currency,
		Execution:       fields.Execution,
		Commissions:     fields.Commissions,
		Notes:           fields.Notes,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// UpdateTransaction rewrites a transaction's fields. The transaction
// must belong to the portfolio named in the payload, and the principal
// must control that portfolio.
func (s *transactionService) UpdateTransaction(transactionID, principalID uint, fields TransactionFields) (*models.Transaction, error) {
	var result *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		portfolio, err := s.findPortfolio(tx, fields.PortfolioID)
		if err != nil {
			return err
		}

		var transaction models.Transaction
		if err := tx.First(&transaction, transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionMismatch
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if transaction.PortfolioID != portfolio.ID {
			return apperrors.ErrTransactionMismatch
		}

		if err := authz.MutateTransaction(principalID, portfolio); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"updated_at":       time.Now(),
			"stock_name":       fields.StockName,
			"stock_sector":     fields.StockSector,
			"transaction_time": fields.TransactionTime,
			"type":             fields.Type,
			"num_shares":       fields.NumShares,
			"price":            fields.Price,
			"currency":         fields.Currency,
			"execution":        fields.Execution,
			"commissions":      fields.Commissions,
			"notes":            fields.Notes,
		}
		if err := tx.Model(&transaction).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.First(&transaction, transactionID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = &transaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteTransaction removes a transaction, authorized against the
// parent portfolio of the transaction itself.
func (s *transactionService) DeleteTransaction(transactionID, principalID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		if err := tx.First(&transaction, transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		portfolio, err := s.findPortfolio(tx, transaction.PortfolioID)
		if err != nil {
			return err
		}

		if err := authz.MutateTransaction(principalID, portfolio); err != nil {
			return err
		}

		if err := tx.Delete(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetPortfolioTransactions returns a paginated list of a portfolio's
// transactions, newest first. Readable by the investor or the manager.
func (s *transactionService) GetPortfolioTransactions(portfolioID, principalID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	portfolio, err := s.findPortfolio(s.db, portfolioID)
	if err != nil {
		return nil, err
	}

	if err := authz.View(principalID, portfolio); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("portfolio_id = ?", portfolioID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("transaction_time desc").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *transactionService) findPortfolio(tx *gorm.DB, portfolioID uint) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := tx.First(&portfolio, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}
