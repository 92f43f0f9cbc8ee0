package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a stock transaction
type TransactionType string

const (
	TransactionTypeBuy        TransactionType = "buy"
	TransactionTypeSell       TransactionType = "sell"
	TransactionTypeBuyToCover TransactionType = "buyToCover"
	TransactionTypeSellShort  TransactionType = "sellShort"
	// TransactionTypeDRIP covers dividends plus reinvestments.
	TransactionTypeDRIP      TransactionType = "drip"
	TransactionTypeDividends TransactionType = "dividends"
	TransactionTypeSplit     TransactionType = "split"
)

// ExecutionType represents the lot-matching method used for a transaction
type ExecutionType string

const (
	ExecutionFIFO            ExecutionType = "fifo"
	ExecutionLIFO            ExecutionType = "lifo"
	ExecutionWeightedAverage ExecutionType = "weightedAverage"
	ExecutionSpecificLots    ExecutionType = "specificLots"
	ExecutionHighCost        ExecutionType = "highCost"
	ExecutionLowCost         ExecutionType = "lowCost"
)

// Transaction represents a stock transaction recorded against a portfolio.
// Who may create, update, or delete a transaction is decided against its
// parent portfolio's management state at the time of the operation.
type Transaction struct {
	Base
	PortfolioID     uint             `gorm:"not null;index" json:"portfolio_id"`
	StockName       string           `gorm:"size:20;not null" json:"stock_name"`
	StockSector     string           `gorm:"size:20" json:"stock_sector,omitempty"`
	TransactionTime time.Time        `gorm:"not null" json:"transaction_time"`
	Type            TransactionType  `gorm:"not null" json:"transaction_type"`
	NumShares       decimal.Decimal  `gorm:"type:numeric;not null" json:"num_shares"`
	Price           decimal.Decimal  `gorm:"type:numeric;not null" json:"price"`
	Currency        string           `gorm:"size:3;not null" json:"currency"`
	Execution       ExecutionType    `gorm:"not null" json:"execution"`
	Commissions     *decimal.Decimal `gorm:"type:numeric" json:"commissions,omitempty"`
	Notes           string           `json:"notes,omitempty"`

	// Relationships
	Portfolio Portfolio `gorm:"foreignKey:PortfolioID" json:"-"`
}
