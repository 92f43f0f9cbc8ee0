package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"stockfolio/internal/authz"
	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// portfolioService orchestrates portfolio lifecycle operations: it loads
// the entities involved, asks the authz engine for a decision, applies
// the resulting transition, and returns the refreshed portfolio with its
// relations preloaded.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreatePortfolio creates a personal portfolio, or a pending managed
// portfolio when an investor ID is supplied.
func (s *portfolioService) CreatePortfolio(principalID uint, name, description, color, url string, investorID *uint) (*models.Portfolio, error) {
	if investorID != nil {
		var count int64
		s.db.Model(&models.User{}).Where("id = ?", *investorID).Count(&count)
		if count == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrUserNotFound, "User with this id does not exist")
		}
	}

	tr, err := authz.Create(principalID, investorID)
	if err != nil {
		return nil, err
	}

	portfolio := &models.Portfolio{
		Name:        name,
		Description: description,
		Color:       color,
		URL:         url,
		UserID:      tr.UserID,
		PMID:        tr.PMID,
		Confirmed:   tr.Confirmed,
	}

	if err := s.db.Create(portfolio).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return portfolio, nil
}

// GetUsersPortfolios returns every portfolio the principal touches,
// partitioned into managed, managing, and personal sets, ordered by
// ascending portfolio ID.
func (s *portfolioService) GetUsersPortfolios(principalID uint) (*authz.UsersPortfolios, error) {
	var portfolios []models.Portfolio
	err := s.withRelations(s.db).
		Where("user_id = ? OR pm_id = ?", principalID, principalID).
		Order("id asc").
		Find(&portfolios).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := authz.Partition(principalID, portfolios)
	return &result, nil
}

// GetPortfolio retrieves a single portfolio with its owner, manager, and
// transactions, provided the principal is one of its two actors.
func (s *portfolioService) GetPortfolio(portfolioID, principalID uint) (*models.Portfolio, error) {
	portfolio, err := s.findByID(s.db, portfolioID, true)
	if err != nil {
		return nil, err
	}

	if err := authz.View(principalID, portfolio); err != nil {
		return nil, err
	}

	return portfolio, nil
}

// UpdatePortfolio applies descriptive field updates on behalf of the
// investor or the manager.
func (s *portfolioService) UpdatePortfolio(portfolioID, principalID uint, fields PortfolioUpdateFields) (*models.Portfolio, error) {
	portfolio, err := s.findByID(s.db, portfolioID, false)
	if err != nil {
		return nil, err
	}

	if err := authz.Update(principalID, portfolio); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if fields.URL != nil {
		updates["url"] = *fields.URL
	}

	if err := s.db.Model(portfolio).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.findByID(s.db, portfolioID, true)
}

// DeletePortfolio removes a portfolio and its transactions. Allowed for
// the manager once one is assigned, otherwise the sole owner.
func (s *portfolioService) DeletePortfolio(portfolioID, principalID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		portfolio, err := s.findByID(tx, portfolioID, false)
		if err != nil {
			return err
		}

		if err := authz.Delete(principalID, portfolio); err != nil {
			return err
		}

		if err := tx.Where("portfolio_id = ?", portfolioID).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(portfolio).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ConfirmPortfolio lets the invited investor accept a pending link.
func (s *portfolioService) ConfirmPortfolio(portfolioID, principalID uint) (*models.Portfolio, error) {
	return s.applyTransition(portfolioID, func(p *models.Portfolio) (authz.Transition, error) {
		return authz.Confirm(principalID, p)
	})
}

// LinkPortfolio invites the user behind the given email to become the
// managed investor of the principal's portfolio. The principal becomes
// the pending manager.
func (s *portfolioService) LinkPortfolio(portfolioID, principalID uint, email string) (*models.Portfolio, error) {
	var invitee *models.User
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		invitee = &user
	case errors.Is(err, gorm.ErrRecordNotFound):
		// authz.Link reports the missing user.
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.applyTransition(portfolioID, func(p *models.Portfolio) (authz.Transition, error) {
		return authz.Link(principalID, p, invitee)
	})
}

// UnlinkPortfolio dissolves the management relationship; the former
// manager walks away as the sole owner.
func (s *portfolioService) UnlinkPortfolio(portfolioID, principalID uint) (*models.Portfolio, error) {
	return s.applyTransition(portfolioID, func(p *models.Portfolio) (authz.Transition, error) {
		return authz.Unlink(principalID, p)
	})
}

// applyTransition runs a fetch-decide-write sequence inside a database
// transaction so concurrent lifecycle changes to the same portfolio
// cannot interleave.
func (s *portfolioService) applyTransition(portfolioID uint, decide func(*models.Portfolio) (authz.Transition, error)) (*models.Portfolio, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		portfolio, err := s.findByID(tx, portfolioID, false)
		if err != nil {
			return err
		}

		tr, err := decide(portfolio)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"updated_at": time.Now(),
			"user_id":    tr.UserID,
			"pm_id":      tr.PMID,
			"confirmed":  tr.Confirmed,
		}
		if err := tx.Model(portfolio).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.findByID(s.db, portfolioID, true)
}

// findByID loads a portfolio, optionally with its relations preloaded.
func (s *portfolioService) findByID(tx *gorm.DB, portfolioID uint, withRelations bool) (*models.Portfolio, error) {
	query := tx
	if withRelations {
		query = s.withRelations(tx)
	}

	var portfolio models.Portfolio
	if err := query.First(&portfolio, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

func (s *portfolioService) withRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User").Preload("PortfolioManager").Preload("Transactions")
}
