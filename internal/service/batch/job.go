package batch

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/quest"
	"github.com/open-builders/questbot/internal/report"
	"github.com/open-builders/questbot/internal/session"
)

type Kind string

const (
	KindClaim   Kind = "claim"
	KindJoin    Kind = "join"
	KindLeave   Kind = "leave"
	KindAnswers Kind = "answers"
	KindEnroll  Kind = "enroll"
)

// Job is one queued batch run. Only the fields of its kind are used.
type Job struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	AccountIDs []string  `json:"account_ids"`
	CreatedAt  time.Time `json:"created_at"`

	// claim
	Group string `json:"group,omitempty"`
	// join
	Subdomain string `json:"subdomain,omitempty"`
	Invite    string `json:"invite,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	// leave
	Community string `json:"community,omitempty"`
	// enroll
	Category string `json:"category,omitempty"`
	Pages    int    `json:"pages,omitempty"`
}

func NewJob(kind Kind, accountIDs []string) Job {
	return Job{ID: uuid.NewString(), Kind: kind, AccountIDs: accountIDs, CreatedAt: time.Now().UTC()}
}

// Validate checks that the job carries what its kind needs.
func (j Job) Validate() error {
	if len(j.AccountIDs) == 0 {
		return apperrors.NewValidationError("account_ids", "at least one account is required")
	}
	switch j.Kind {
	case KindClaim:
		if _, ok := Groups[j.Group]; !ok {
			return apperrors.NewValidationError("group", fmt.Sprintf("unknown claim group %q", j.Group))
		}
	case KindJoin:
		if j.Subdomain == "" || j.Invite == "" {
			return apperrors.NewValidationError("invite", "subdomain and invite code are required")
		}
	case KindLeave:
		if strings.TrimSpace(j.Community) == "" {
			return apperrors.NewValidationError("community", "community is required")
		}
	case KindAnswers:
	case KindEnroll:
		if j.Category == "" {
			return apperrors.NewValidationError("category", "category is required")
		}
	default:
		return apperrors.NewValidationError("kind", fmt.Sprintf("unknown job kind %q", j.Kind))
	}
	return nil
}

// Run executes job and streams its report to out.
func (o *Orchestrator) Run(ctx context.Context, job Job, out report.Reporter) error {
	if err := job.Validate(); err != nil {
		return err
	}
	log := o.logger.With().Str("job_id", job.ID).Str("kind", string(job.Kind)).Logger()
	log.Info().Int("accounts", len(job.AccountIDs)).Msg("Batch started")
	start := time.Now()

	var err error
	switch job.Kind {
	case KindClaim:
		err = o.ClaimBatch(ctx, job.AccountIDs, job.Group, out)
	case KindJoin:
		err = o.JoinByReferral(ctx, job.AccountIDs, job.Subdomain, job.Invite, job.Limit, out)
	case KindLeave:
		err = o.Leave(ctx, job.AccountIDs, job.Community, out)
	case KindAnswers:
		for _, id := range job.AccountIDs {
			if err = o.RecordAnswers(ctx, id, out); err != nil {
				break
			}
		}
	case KindEnroll:
		err = o.enroll(ctx, job, out)
	}

	log.Info().Err(err).Dur("took", time.Since(start)).Msg("Batch finished")
	return err
}

// enroll joins every account to the public communities of a listing category.
func (o *Orchestrator) enroll(ctx context.Context, job Job, out report.Reporter) error {
	pages := job.Pages
	if pages <= 0 {
		pages = 1
	}
	communities := o.Directory(ctx, job.Category, 0, pages)
	for _, id := range o.order(job.AccountIDs) {
		if err := o.JoinCommunities(ctx, id, communities, out); err != nil {
			return err
		}
	}
	return nil
}

// Directory lists communities of a category anonymously.
func (o *Orchestrator) Directory(ctx context.Context, category string, from, to int) []quest.Community {
	return o.connect(session.Credential{}).ListCommunities(ctx, category, from, to)
}

var inviteRe = regexp.MustCompile(`^https?://([^./\s]+)\.[^/\s]+/invite/(\S+?)(?:\s+(\d+))?\s*$`)

// ParseInvite splits "https://<sub>.<site>/invite/<code> [limit]" into its parts.
// A missing limit is returned as zero.
func ParseInvite(text string) (subdomain, code string, limit int, err error) {
	m := inviteRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", 0, apperrors.NewValidationError("invite", "not an invite link")
	}
	if m[3] != "" {
		if limit, err = strconv.Atoi(m[3]); err != nil {
			return "", "", 0, apperrors.NewValidationError("invite", "invalid join limit")
		}
	}
	return m[1], m[2], limit, nil
}
