package authz

import "stockfolio/internal/models"

// UsersPortfolios partitions every portfolio a user touches into three
// mutually exclusive sets.
type UsersPortfolios struct {
	// Managed holds portfolios the user owns but someone else manages.
	Managed []models.Portfolio `json:"managed"`
	// Managing holds portfolios the user manages for someone else.
	Managing []models.Portfolio `json:"managing"`
	// Personal holds portfolios the user owns outright.
	Personal []models.Portfolio `json:"personal"`
}

// Partition classifies a user's portfolios. The input must already be
// filtered to portfolios where the principal is the investor or the
// manager; the three resulting sets are exhaustive and disjoint over
// that input, and each preserves the input ordering.
func Partition(principal uint, portfolios []models.Portfolio) UsersPortfolios {
	out := UsersPortfolios{
		Managed:  []models.Portfolio{},
		Managing: []models.Portfolio{},
		Personal: []models.Portfolio{},
	}
	for _, p := range portfolios {
		switch {
		case p.PMID != nil && *p.PMID == principal:
			out.Managing = append(out.Managing, p)
		case p.PMID != nil:
			out.Managed = append(out.Managed, p)
		case p.UserID == principal:
			out.Personal = append(out.Personal, p)
		}
	}
	return out
}
