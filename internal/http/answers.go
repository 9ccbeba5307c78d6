package http

import (
	"github.com/gin-gonic/gin"

	"github.com/open-builders/questbot/internal/answers"
	"github.com/open-builders/questbot/internal/common/middleware"
)

func (h *Handlers) registerAnswers(r *gin.RouterGroup) {
	r.GET("/answers", h.listAnswerCommunities)
	r.GET("/answers/:community", h.communityAnswers)
}

// @Summary Answer bank communities
// @Tags answers
// @Produce json
// @Security TelegramInitData
// @Success 200 {array} string
// @Failure 503 {object} middleware.ErrorResponse "Answer store unavailable"
// @Router /answers [get]
func (h *Handlers) listAnswerCommunities(c *gin.Context) {
	bank, err := h.deps.Answers.Read(c.Request.Context())
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, bank.Communities())
}

// @Summary Recorded answers of a community
// @Tags answers
// @Produce json
// @Security TelegramInitData
// @Param community path string true "Community name"
// @Success 200 {array} answers.Record
// @Router /answers/{community} [get]
func (h *Handlers) communityAnswers(c *gin.Context) {
	records, err := h.deps.Answers.Records(c.Request.Context(), answers.CommunityKey(c.Param("community")))
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	if records == nil {
		records = []answers.Record{}
	}
	ok(c, records)
}
