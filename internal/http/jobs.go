package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/common/middleware"
	"github.com/open-builders/questbot/internal/report"
	"github.com/open-builders/questbot/internal/service/batch"
	"github.com/open-builders/questbot/internal/workers"
)

func (h *Handlers) registerJobs(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.POST("", h.enqueueJob)
		jobs.GET("/:id", h.getJob)
	}
}

// JobRequest submits a batch run. Only the fields of the kind are read.
type JobRequest struct {
	Kind batch.Kind `json:"kind" binding:"required" enums:"claim,join,leave,answers,enroll"`
	// AccountIDs selects the accounts; empty with All set means every account.
	AccountIDs []string `json:"account_ids,omitempty"`
	All        bool     `json:"all,omitempty"`

	// claim: daily, quiz, discord, twitter, social, any
	Group string `json:"group,omitempty"`
	// join: "https://<sub>.<site>/invite/<code> [limit]"
	InviteLink string `json:"invite_link,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	// leave: subdomain or community name
	Community string `json:"community,omitempty"`
	// enroll
	Category string `json:"category,omitempty"`
	Pages    int    `json:"pages,omitempty"`
}

type JobAccepted struct {
	ID string `json:"id"`
}

// ReportResponse is a report as lines plus the Markdown text sent to Telegram.
type ReportResponse struct {
	Lines []report.Line `json:"lines"`
	Text  string        `json:"text"`
}

func newReportResponse(lines []report.Line) ReportResponse {
	if lines == nil {
		lines = []report.Line{}
	}
	return ReportResponse{Lines: lines, Text: report.Render(lines)}
}

// JobResponse is the state of a job and what it reported so far.
type JobResponse struct {
	Status *workers.Status `json:"status"`
	ReportResponse
}

// @Summary Submit batch job
// @Description Queue a claim, join, leave, answers or enroll run. Jobs run one at a time.
// @Tags jobs
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body JobRequest true "Job"
// @Success 202 {object} JobAccepted
// @Failure 400 {object} middleware.ErrorResponse "Invalid job"
// @Failure 503 {object} middleware.ErrorResponse "Queue unavailable"
// @Router /jobs [post]
func (h *Handlers) enqueueJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}
	ctx := c.Request.Context()

	ids := req.AccountIDs
	if len(ids) == 0 && req.All {
		all, err := h.deps.Roster.IDs(ctx)
		if err != nil {
			middleware.Abort(c, err)
			return
		}
		ids = all
	}

	job := batch.NewJob(req.Kind, ids)
	switch req.Kind {
	case batch.KindClaim:
		job.Group = req.Group
	case batch.KindJoin:
		sub, code, limit, err := batch.ParseInvite(req.InviteLink)
		if err != nil {
			middleware.Abort(c, err)
			return
		}
		job.Subdomain, job.Invite, job.Limit = sub, code, limit
		if req.Limit > 0 {
			job.Limit = req.Limit
		}
	case batch.KindLeave:
		job.Community = strings.TrimSpace(req.Community)
	case batch.KindEnroll:
		job.Category, job.Pages = req.Category, req.Pages
	}

	id, err := h.deps.Jobs.Enqueue(ctx, job)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	h.deps.Logger.Info().Str("job_id", id).Str("kind", string(job.Kind)).Int("accounts", len(ids)).Msg("Job queued")
	c.JSON(http.StatusAccepted, JobAccepted{ID: id})
}

// @Summary Job status and report
// @Tags jobs
// @Produce json
// @Security TelegramInitData
// @Param id path string true "Job ID"
// @Success 200 {object} JobResponse
// @Failure 404 {object} middleware.ErrorResponse "Unknown job"
// @Router /jobs/{id} [get]
func (h *Handlers) getJob(c *gin.Context) {
	ctx := c.Request.Context()
	status, err := h.deps.Jobs.Status(ctx, c.Param("id"))
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	lines, err := h.deps.Reports.Lines(ctx, status.ID)
	if err != nil {
		middleware.Abort(c, err)
		return
	}
	ok(c, JobResponse{Status: status, ReportResponse: newReportResponse(lines)})
}
