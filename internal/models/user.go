package models

import "time"

// Role represents a user's role in the system
type Role string

const (
	RoleAdministrator    Role = "administrator"
	RolePortfolioManager Role = "portfolioManager"
	RoleInvestor         Role = "investor"
)

// User represents the user model in the database
type User struct {
	Base
	Email            string      `gorm:"uniqueIndex;not null" json:"email"`
	Password         string      `gorm:"not null" json:"-"`
	FirstName        string      `gorm:"size:40" json:"first_name"`
	LastName         string      `gorm:"size:40" json:"last_name"`
	Role             Role        `gorm:"default:investor" json:"role"`
	IsActive         bool        `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string      `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time  `json:"last_login_at,omitempty"`
	Portfolios       []Portfolio `gorm:"foreignKey:UserID" json:"portfolios,omitempty"`
	Managed          []Portfolio `gorm:"foreignKey:PMID" json:"managed,omitempty"`
}
