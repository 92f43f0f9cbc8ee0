// Package authz is the authorization and lifecycle engine for portfolios
// and their transactions. It is pure decision logic: every function
// consumes already-fetched models plus the principal (the authenticated
// user ID) and returns either a permitted transition or an AppError.
// No I/O happens here; all state lives in the records passed in.
package authz

import (
	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/models"
)

// Transition describes the ownership fields a permitted lifecycle
// operation writes back to a portfolio. UserID is the investor, PMID the
// portfolio manager (nil for a personal portfolio).
type Transition struct {
	UserID    uint
	PMID      *uint
	Confirmed bool
}

// Create decides who owns a new portfolio. Without an investor the
// principal gets a personal portfolio. With an investor the principal
// becomes the manager of a pending portfolio owned by the investor; the
// caller must have resolved the investor to an existing user first.
func Create(principal uint, investorID *uint) (Transition, error) {
	if investorID == nil {
		return Transition{UserID: principal, Confirmed: true}, nil
	}
	if *investorID == principal {
		return Transition{}, apperrors.ErrSelfManaged
	}
	pm := principal
	return Transition{UserID: *investorID, PMID: &pm, Confirmed: false}, nil
}

// View permits the portfolio's investor or its manager.
func View(principal uint, p *models.Portfolio) error {
	if p.UserID == principal || (p.PMID != nil && *p.PMID == principal) {
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to receive this portfolio")
}

// Update uses the same predicate as View: either the investor or the
// manager may edit a portfolio's descriptive fields.
func Update(principal uint, p *models.Portfolio) error {
	if p.UserID == principal || (p.PMID != nil && *p.PMID == principal) {
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to update this portfolio")
}

// Delete permits only the manager once one is assigned, otherwise only
// the sole owner.
func Delete(principal uint, p *models.Portfolio) error {
	if p.PMID != nil {
		if *p.PMID != principal {
			return apperrors.WithMessage(apperrors.ErrForbidden, "Portfolio deletion is only allowed by its portfolio manager")
		}
		return nil
	}
	if p.UserID != principal {
		return apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to delete this portfolio")
	}
	return nil
}

// Confirm permits only the invited investor to confirm a pending link.
// The ownership fields are unchanged; only Confirmed flips.
func Confirm(principal uint, p *models.Portfolio) (Transition, error) {
	if p.UserID != principal {
		return Transition{}, apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to confirm this portfolio")
	}
	return Transition{UserID: p.UserID, PMID: p.PMID, Confirmed: true}, nil
}

// Link invites another user over the principal's own portfolio: the
// principal becomes the manager and the invitee the managed investor,
// pending the invitee's confirmation. Only the current sole owner may
// link, and never to themselves.
func Link(principal uint, p *models.Portfolio, invitee *models.User) (Transition, error) {
	if invitee == nil {
		return Transition{}, apperrors.WithMessage(apperrors.ErrUserNotFound, "User with this email does not exist")
	}
	if invitee.ID == principal {
		return Transition{}, apperrors.ErrSelfLink
	}
	if p.UserID != principal {
		return Transition{}, apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to link this portfolio")
	}
	pm := principal
	return Transition{UserID: invitee.ID, PMID: &pm, Confirmed: false}, nil
}

// Unlink removes the investor from the relationship entirely: the former
// manager becomes the sole owner of the resulting personal portfolio.
// Only the current manager may unlink.
func Unlink(principal uint, p *models.Portfolio) (Transition, error) {
	if p.PMID == nil || *p.PMID != principal {
		return Transition{}, apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to unlink this portfolio")
	}
	return Transition{UserID: principal, PMID: nil, Confirmed: true}, nil
}

// MutateTransaction gates create/update/delete of a transaction against
// its parent portfolio: manager-only once a manager is assigned,
// owner-only otherwise. Re-evaluated on every call, never cached.
func MutateTransaction(principal uint, p *models.Portfolio) error {
	if p.PMID != nil {
		if *p.PMID != principal {
			return apperrors.WithMessage(apperrors.ErrForbidden, "Transaction changes are only allowed by the portfolio manager")
		}
		return nil
	}
	if p.UserID != principal {
		return apperrors.WithMessage(apperrors.ErrForbidden, "You don't have permission to change transactions of this portfolio")
	}
	return nil
}

// RequireAdmin gates administrator-only operations on the user surface.
func RequireAdmin(principal *models.User) error {
	if principal == nil || principal.Role != models.RoleAdministrator {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Administrator role required")
	}
	return nil
}

// UpdateUser permits a user to update only their own record.
func UpdateUser(principal, target uint) error {
	if principal != target {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Cannot update another user")
	}
	return nil
}
