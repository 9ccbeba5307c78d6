package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/common/middleware"
	"github.com/open-builders/questbot/internal/domain/account"
	"github.com/open-builders/questbot/internal/session"
	"github.com/open-builders/questbot/internal/utils/wallet"
)

func (h *Handlers) registerAccounts(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.importAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/profile", h.refreshProfile)
		accounts.GET("/:id/referrals", h.referralLinks)
	}
	r.GET("/wallets/:address", h.findByWallet)
	r.GET("/socials/discords", h.listDiscords)
	r.GET("/socials/twitters", h.listTwitters)
}

// ImportRequest carries the captured session headers of a logged in account.
type ImportRequest struct {
	Headers map[string]string `json:"headers" binding:"required"`
	// Wallet, when given, must be the account's login wallet.
	Wallet string `json:"wallet,omitempty"`
}

// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} account.Account
// @Failure 503 {object} middleware.ErrorResponse "Storage unavailable"
// @Router /accounts [get]
func (h *Handlers) listAccounts(c *gin.Context) {
	list, err := h.deps.Roster.List(c.Request.Context())
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, list)
}

// @Summary Import account
// @Description Store a session captured from a logged in browser. The profile is fetched from the platform to learn the account id.
// @Tags accounts
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body ImportRequest true "Session headers"
// @Success 201 {object} account.Account
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Failure 502 {object} middleware.ErrorResponse "Session not accepted by the platform"
// @Router /accounts [post]
func (h *Handlers) importAccount(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	var expected string
	if req.Wallet != "" {
		if !wallet.IsEVM(req.Wallet) {
			middleware.Abort(c, apperrors.NewValidationError("wallet", "not an EVM address"))
			return
		}
		expected, _ = wallet.Normalize(wallet.ChainEthereum, req.Wallet)
	}

	cred := session.New("", req.Headers, h.deps.Config.Platform.SiteURL)
	if !cred.HasCookie() {
		middleware.Abort(c, apperrors.NewValidationError("headers", "cookie header is required"))
		return
	}

	ctx := c.Request.Context()
	user, err := h.deps.Connect(cred).User(ctx)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	if expected != "" && !user.OwnsWallet(expected) {
		middleware.Abort(c, apperrors.NewValidationError("wallet", "does not match the account wallet"))
		return
	}

	cred.AccountID = user.ID
	if err := h.deps.Roster.Save(ctx, *user, cred); err != nil {
		middleware.Abort(c, err)
		return
	}
	h.deps.Logger.Info().Str("account_id", user.ID).Str("name", user.DisplayName()).Msg("Account imported")
	c.JSON(http.StatusCreated, user)
}

// @Summary Get account
// @Tags accounts
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Success 200 {object} account.Account
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /accounts/{id} [get]
func (h *Handlers) getAccount(c *gin.Context) {
	a, err := h.deps.Roster.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, a)
}

// @Summary Delete account
// @Tags accounts
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /accounts/{id} [delete]
func (h *Handlers) deleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.deps.Roster.Get(ctx, id); err != nil {
		middleware.Abort(c, err)
		return
	}
	if err := h.deps.Roster.Delete(ctx, id); err != nil {
		middleware.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Refresh account profile
// @Description Fetch the profile from the platform and store it.
// @Tags accounts
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Success 200 {object} account.Account
// @Failure 502 {object} middleware.ErrorResponse "Account not connected"
// @Router /accounts/{id}/profile [get]
func (h *Handlers) refreshProfile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, _, err := h.profile(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	user, err := profile.User(ctx)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	if err := h.deps.Roster.UpdateProfile(ctx, *user); err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, user)
}

// @Summary Referral links
// @Description Invite link of every community the account joined.
// @Tags accounts
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Success 200 {object} ReportResponse
// @Router /accounts/{id}/referrals [get]
func (h *Handlers) referralLinks(c *gin.Context) {
	lines, err := h.deps.Referrals.ReferralLinks(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, newReportResponse(lines))
}

// @Summary Find account by wallet
// @Tags accounts
// @Produce json
// @Security TelegramInitData
// @Param address path string true "Wallet address"
// @Success 200 {object} account.Account
// @Failure 404 {object} middleware.ErrorResponse "No account owns the wallet"
// @Router /wallets/{address} [get]
func (h *Handlers) findByWallet(c *gin.Context) {
	a, err := h.deps.Roster.FindByWallet(c.Request.Context(), strings.TrimSpace(c.Param("address")))
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, a)
}

// @Summary Discord handles of all accounts
// @Tags accounts
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} string
// @Router /socials/discords [get]
func (h *Handlers) listDiscords(c *gin.Context) {
	h.listSocials(c, h.deps.Roster.Discords)
}

// @Summary Twitter usernames of all accounts
// @Tags accounts
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} string
// @Router /socials/twitters [get]
func (h *Handlers) listTwitters(c *gin.Context) {
	h.listSocials(c, h.deps.Roster.Twitters)
}

func (h *Handlers) listSocials(c *gin.Context, list func(ctx context.Context) ([]string, error)) {
	out, err := list(c.Request.Context())
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	if out == nil {
		out = []string{}
	}
	ok(c, out)
}

// profile opens the platform connection of the :id account.
func (h *Handlers) profile(c *gin.Context) (Profile, *account.Account, error) {
	ctx := c.Request.Context()
	id := c.Param("id")
	a, err := h.deps.Roster.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	cred, err := h.deps.Roster.Credential(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return h.deps.Connect(cred), a, nil
}
