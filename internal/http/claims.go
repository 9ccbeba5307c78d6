package http

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/common/middleware"
	"github.com/open-builders/questbot/internal/domain/quest"
	"github.com/open-builders/questbot/internal/service/claim"
)

// ClaimRequest optionally carries the answer of a knowledge quest. Without
// one the answer bank is consulted.
type ClaimRequest struct {
	Answer string `json:"answer,omitempty"`
}

// @Summary Claim quest
// @Description Submit one quest. Quests needing an answer are never submitted without one; the result then reports answer_required.
// @Tags quests
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Param subdomain path string true "Community subdomain"
// @Param questId path string true "Quest ID"
// @Param request body ClaimRequest false "Answer"
// @Success 200 {object} claim.Result
// @Failure 404 {object} middleware.ErrorResponse "Quest not on the board"
// @Router /accounts/{id}/communities/{subdomain}/quests/{questId}/claim [post]
func (h *Handlers) claimQuest(c *gin.Context) {
	var req ClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
			return
		}
	}

	ctx := c.Request.Context()
	profile, a, err := h.profile(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	subdomain := c.Param("subdomain")

	var target *quest.Quest
	for _, q := range profile.AllQuests(ctx, subdomain) {
		if q.ID == c.Param("questId") {
			target = &q
			break
		}
	}
	if target == nil {
		middleware.Abort(c, apperrors.NewNotFoundError("quest", c.Param("questId")))
		return
	}

	answer := req.Answer
	if answer == "" && target.SubmissionType.RequiresAnswer() {
		answer = h.bankAnswer(c, profile, subdomain, target.Name)
	}

	engine := claim.NewEngine(profile, h.deps.Pacer, h.deps.Logger.With().Str("account_id", a.ID).Logger())
	ok(c, engine.ClaimQuest(ctx, subdomain, *target, answer))
}

// bankAnswer looks the quest up under the community's display name.
func (h *Handlers) bankAnswer(c *gin.Context, profile Profile, subdomain, questName string) string {
	ctx := c.Request.Context()
	bank, err := h.deps.Answers.Read(ctx)
	if err != nil {
		h.deps.Logger.Warn().Err(err).Msg("Answer bank unavailable")
		return ""
	}
	name := subdomain
	for _, community := range profile.UserCommunities(ctx) {
		if community.Subdomain == subdomain {
			name = community.Name
			break
		}
	}
	answer, _ := bank.Lookup(name, questName)
	return answer
}

// @Summary Change profile settings
// @Description Link a wallet (address + blockchain) or set the username. An empty body sets a generated username.
// @Tags accounts
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Param subdomain path string true "Community subdomain the change is made through"
// @Param request body claim.Settings false "Settings"
// @Success 200 {object} account.Account
// @Failure 400 {object} middleware.ErrorResponse "Invalid address"
// @Failure 502 {object} middleware.ErrorResponse "Rejected by the platform"
// @Router /accounts/{id}/communities/{subdomain}/settings [put]
func (h *Handlers) changeSettings(c *gin.Context) {
	var req claim.Settings
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
			return
		}
	}

	ctx := c.Request.Context()
	profile, a, err := h.profile(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	engine := claim.NewEngine(profile, h.deps.Pacer, h.deps.Logger.With().Str("account_id", a.ID).Logger())
	updated, err := engine.ChangeSettings(ctx, c.Param("subdomain"), req)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	if err := h.deps.Roster.UpdateProfile(ctx, *updated); err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, updated)
}
