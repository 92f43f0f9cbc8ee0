package models

// Portfolio represents a collection of stock holdings owned by an
// investor and optionally delegated to a portfolio manager.
//
// A portfolio is always in exactly one of three shapes:
//   - personal: PMID is nil, Confirmed is true, UserID has full control
//   - pending:  PMID is set, Confirmed is false, waiting on UserID to confirm
//   - linked:   PMID is set, Confirmed is true, PMID manages the portfolio
type Portfolio struct {
	Base
	Name        string `gorm:"size:20;not null" json:"name"`
	Description string `gorm:"size:240" json:"description"`
	Color       string `gorm:"size:7;not null" json:"color"`
	URL         string `json:"url,omitempty"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	PMID        *uint  `gorm:"index" json:"pm_id,omitempty"`
	Confirmed   bool   `gorm:"default:false" json:"confirmed"`

	// Relationships
	User             User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PortfolioManager *User         `gorm:"foreignKey:PMID" json:"portfolio_manager,omitempty"`
	Transactions     []Transaction `gorm:"foreignKey:PortfolioID" json:"transactions,omitempty"`
}

// Managed reports whether the portfolio has a portfolio manager assigned,
// either pending or confirmed.
func (p *Portfolio) Managed() bool {
	return p.PMID != nil
}
