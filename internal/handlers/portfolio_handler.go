package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfolio/internal/errors"
	"stockfolio/internal/services"
)

// PortfolioHandler handles portfolio-related requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	auditService     services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, auditService services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, auditService: auditService}
}

// CreatePortfolioRequest represents the portfolio creation payload.
// Supplying an investor ID creates a pending managed portfolio on the
// investor's behalf; the creator becomes the portfolio manager.
type CreatePortfolioRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=20"`
	Description string `json:"description" binding:"max=240"`
	Color       string `json:"color" binding:"required,hex_color"`
	URL         string `json:"url" binding:"omitempty,url"`
	InvestorID  *uint  `json:"investor_id"`
}

// UpdatePortfolioRequest represents the portfolio update payload
type UpdatePortfolioRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=20"`
	Description *string `json:"description" binding:"omitempty,max=240"`
	Color       *string `json:"color" binding:"omitempty,hex_color"`
	URL         *string `json:"url" binding:"omitempty,url"`
}

// LinkPortfolioRequest represents the link invitation payload
type LinkPortfolioRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreatePortfolio handles portfolio creation
// @Summary     Create a portfolio
// @Description Create a personal portfolio, or a pending managed portfolio when investor_id is supplied
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePortfolioRequest true "Portfolio details"
// @Success     201 {object} models.Portfolio "Portfolio created"
// @Failure     400 {object} ErrorResponse "Invalid input or self-managed creation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios/create [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(userID, req.Name, req.Description, req.Color, req.URL, req.InvestorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PORTFOLIO", "portfolio", portfolio.ID, c.ClientIP(),
		map[string]any{"name": req.Name, "investor_id": req.InvestorID})

	c.JSON(http.StatusCreated, gin.H{"portfolio": portfolio})
}

// GetUsersPortfolios returns the principal's partitioned portfolio list
// @Summary     List portfolios
// @Description Get all portfolios the user touches, partitioned into managed, managing, and personal sets
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} authz.UsersPortfolios "Partitioned portfolios"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios [get]
func (h *PortfolioHandler) GetUsersPortfolios(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolios, err := h.portfolioService.GetUsersPortfolios(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolios)
}

// GetPortfolio returns a single portfolio
// @Summary     Get a portfolio
// @Description Get a portfolio with its owner, manager, and transactions. Investor or manager only.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     200 {object} models.Portfolio "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
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

	portfolio, err := h.portfolioService.GetPortfolio(id, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// UpdatePortfolio updates a portfolio's descriptive fields
// @Summary     Update a portfolio
// @Description Update name, description, color, or URL. Investor or manager only.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "Portfolio ID"
// @Param       request body UpdatePortfolioRequest true "Fields to update"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [put]
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
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

	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(id, userID, services.PortfolioUpdateFields{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		URL:         req.URL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PORTFOLIO", "portfolio", portfolio.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// DeletePortfolio deletes a portfolio and its transactions
// @Summary     Delete a portfolio
// @Description Delete a portfolio. Manager-only once linked, otherwise owner-only.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     204 "Portfolio deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
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

	if err := h.portfolioService.DeletePortfolio(id, userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PORTFOLIO", "portfolio", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// ConfirmPortfolio confirms a pending management link
// @Summary     Confirm a portfolio link
// @Description Accept a pending management invitation. Invited investor only.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     200 {object} models.Portfolio "Confirmed portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/confirm [patch]
func (h *PortfolioHandler) ConfirmPortfolio(c *gin.Context) {
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

	portfolio, err := h.portfolioService.ConfirmPortfolio(id, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CONFIRM_PORTFOLIO", "portfolio", portfolio.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// LinkPortfolio invites another user into a management relationship
// @Summary     Link a portfolio
// @Description Invite the user behind the email to become the managed investor; the caller becomes the pending manager. Sole owner only.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Portfolio ID"
// @Param       request body LinkPortfolioRequest true "Invitee email"
// @Success     200 {object} models.Portfolio "Pending portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input or self-link"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio or invitee not found"
// @Router      /portfolios/{id}/link [patch]
func (h *PortfolioHandler) LinkPortfolio(c *gin.Context) {
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

	var req LinkPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.LinkPortfolio(id, userID, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "LINK_PORTFOLIO", "portfolio", portfolio.ID, c.ClientIP(),
		map[string]any{"invitee_email": req.Email})

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// UnlinkPortfolio dissolves a management relationship
// @Summary     Unlink a portfolio
// @Description Remove the investor from the relationship; the manager becomes the sole owner. Manager only.
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Portfolio ID"
// @Success     200 {object} models.Portfolio "Personal portfolio owned by the former manager"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/unlink [patch]
func (h *PortfolioHandler) UnlinkPortfolio(c *gin.Context) {
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

	portfolio, err := h.portfolioService.UnlinkPortfolio(id, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UNLINK_PORTFOLIO", "portfolio", portfolio.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}
