package services

import (
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/authz"
	"stockfolio/internal/models"
	"stockfolio/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Signup(email, password, confirmPassword, firstName, lastName string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers(principalID uint, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	GetUser(principalID, id uint) (*models.User, error)
	UpdateUser(principalID, id uint, fields UserUpdateFields) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// UserUpdateFields holds the optional self-service profile updates.
type UserUpdateFields struct {
	FirstName *string
	LastName  *string
	Role      *models.Role
}

// PortfolioUpdateFields holds the descriptive portfolio fields either
// the investor or the manager may edit.
type PortfolioUpdateFields struct {
	Name        *string
	Description *string
	Color       *string
	URL         *string
}

// PortfolioServicer defines the contract for portfolio lifecycle logic.
type PortfolioServicer interface {
	CreatePortfolio(principalID uint, name, description, color, url string, investorID *uint) (*models.Portfolio, error)
	GetUsersPortfolios(principalID uint) (*authz.UsersPortfolios, error)
	GetPortfolio(portfolioID, principalID uint) (*models.Portfolio, error)
	UpdatePortfolio(portfolioID, principalID uint, fields PortfolioUpdateFields) (*models.Portfolio, error)
	DeletePortfolio(portfolioID, principalID uint) error
	ConfirmPortfolio(portfolioID, principalID uint) (*models.Portfolio, error)
	LinkPortfolio(portfolioID, principalID uint, email string) (*models.Portfolio, error)
	UnlinkPortfolio(portfolioID, principalID uint) (*models.Portfolio, error)
}

// TransactionFields holds the full set of writable transaction fields.
type TransactionFields struct {
	PortfolioID     uint
	StockName       string
	StockSector     string
	TransactionTime time.Time
	Type            models.TransactionType
	NumShares       decimal.Decimal
	Price           decimal.Decimal
	Currency        string
	Execution       models.ExecutionType
	Commissions     *decimal.Decimal
	Notes           string
}

// TransactionServicer defines the contract for transaction logic. Every
// mutation is authorized against the parent portfolio's management state
// at call time.
type TransactionServicer interface {
	CreateTransaction(principalID uint, fields TransactionFields) (*models.Transaction, error)
	UpdateTransaction(transactionID, principalID uint, fields TransactionFields) (*models.Transaction, error)
	DeleteTransaction(transactionID, principalID uint) error
	GetPortfolioTransactions(portfolioID, principalID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}
