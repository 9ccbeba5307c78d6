package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/common/middleware"
	"github.com/open-builders/questbot/internal/domain/quest"
	"github.com/open-builders/questbot/internal/session"
)

const (
	defaultCategory = "new"
	defaultPages    = 3
	maxPages        = 50
)

func (h *Handlers) registerCommunities(r *gin.RouterGroup, cached gin.HandlerFunc) {
	communities := r.Group("/communities", cached)
	{
		communities.GET("", h.listCommunities)
		communities.GET("/search", h.searchCommunity)
	}

	accounts := r.Group("/accounts/:id/communities")
	{
		accounts.GET("", h.accountCommunities)
		accounts.GET("/:subdomain/stats", h.communityStats)
		accounts.GET("/:subdomain/quests", h.listQuests)
		accounts.POST("/:subdomain/quests/:questId/claim", h.claimQuest)
		accounts.PUT("/:subdomain/settings", h.changeSettings)
	}
}

// CommunityCard is a community with its rendered operator card.
type CommunityCard struct {
	quest.Community
	Card string `json:"card"`
}

// @Summary List communities
// @Description Public communities of a category, pages [from, to) of the platform listing.
// @Tags communities
// @Produce json
// @Security TelegramInitData
// @Param category query string false "Category (new, DAO, NFT, ...)" default(new)
// @Param from query int false "First page" default(0)
// @Param to query int false "Page after the last one" default(3)
// @Success 200 {array} CommunityCard
// @Failure 400 {object} middleware.ErrorResponse "Invalid page range"
// @Router /communities [get]
func (h *Handlers) listCommunities(c *gin.Context) {
	category := c.DefaultQuery("category", defaultCategory)
	from, err := intQuery(c, "from", 0)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	to, err := intQuery(c, "to", from+defaultPages)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	if from < 0 || to < from || to-from > maxPages {
		middleware.Abort(c, apperrors.NewValidationError("to", "page range must be ascending and at most 50 pages"))
		return
	}

	anon := h.deps.Connect(session.Credential{})
	list := anon.ListCommunities(c.Request.Context(), category, from, to)
	out := make([]CommunityCard, len(list))
	for i, community := range list {
		out[i] = CommunityCard{Community: community, Card: quest.FormatCommunity(community, anon.SiteURL(community.Subdomain), nil)}
	}
	ok(c, out)
}

// @Summary Search community
// @Description First community matching the keyword.
// @Tags communities
// @Produce json
// @Security TelegramInitData
// @Param q query string true "Keyword"
// @Success 200 {object} CommunityCard
// @Failure 404 {object} middleware.ErrorResponse "Nothing found"
// @Router /communities/search [get]
func (h *Handlers) searchCommunity(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		middleware.Abort(c, apperrors.NewValidationError("q", "keyword is required"))
		return
	}
	anon := h.deps.Connect(session.Credential{})
	found, exists := anon.SearchCommunity(c.Request.Context(), keyword)
	if !exists {
		middleware.Abort(c, apperrors.NewNotFoundError("community", keyword))
		return
	}
	ok(c, CommunityCard{Community: *found, Card: quest.FormatCommunity(*found, anon.SiteURL(found.Subdomain), nil)})
}

// @Summary Account communities
// @Description Communities the account joined.
// @Tags communities
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Success 200 {array} CommunityCard
// @Failure 404 {object} middleware.ErrorResponse "Account not found"
// @Router /accounts/{id}/communities [get]
func (h *Handlers) accountCommunities(c *gin.Context) {
	profile, _, err := h.profile(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	list := profile.UserCommunities(c.Request.Context())
	out := make([]CommunityCard, len(list))
	for i, community := range list {
		out[i] = CommunityCard{Community: community, Card: quest.FormatCommunity(community, profile.SiteURL(community.Subdomain), nil)}
	}
	ok(c, out)
}

// @Summary Community standing
// @Description Invites, level, leaderboard rank and XP of the account in a community.
// @Tags communities
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Param subdomain path string true "Community subdomain"
// @Success 200 {object} quest.MemberStats
// @Router /accounts/{id}/communities/{subdomain}/stats [get]
func (h *Handlers) communityStats(c *gin.Context) {
	profile, a, err := h.profile(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, profile.CommunityStats(c.Request.Context(), c.Param("subdomain"), a.ID))
}

// @Summary List quests
// @Description Quests of a community board, optionally filtered.
// @Tags quests
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Account ID"
// @Param subdomain path string true "Community subdomain"
// @Param types query string false "Comma separated submission types"
// @Param unlocked query bool false "Only claimable quests"
// @Param role query bool false "Only quests rewarding a role"
// @Param auto query bool false "Only auto validated quests"
// @Success 200 {array} quest.Quest
// @Router /accounts/{id}/communities/{subdomain}/quests [get]
func (h *Handlers) listQuests(c *gin.Context) {
	profile, _, err := h.profile(c)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	var preds []quest.Predicate
	if types := quest.ParseTypes(c.Query("types")); len(types) > 0 {
		preds = append(preds, quest.OfType(types...))
	}
	if c.Query("unlocked") == "true" {
		preds = append(preds, quest.Unlocked)
	}
	if c.Query("role") == "true" {
		preds = append(preds, quest.GrantsRole)
	}
	if c.Query("auto") == "true" {
		preds = append(preds, quest.AutoValidates)
	}
	ok(c, quest.Filter(profile.AllQuests(c.Request.Context(), c.Param("subdomain")), preds...))
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name, "must be an integer")
	}
	return v, nil
}
