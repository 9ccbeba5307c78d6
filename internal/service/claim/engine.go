// Package claim submits quest claims and classifies the platform's verdict.
package claim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"

	"github.com/open-builders/questbot/internal/answers"
	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/account"
	"github.com/open-builders/questbot/internal/domain/quest"
	"github.com/open-builders/questbot/internal/pacing"
	"github.com/open-builders/questbot/internal/platform/crew3"
	"github.com/open-builders/questbot/internal/report"
	"github.com/open-builders/questbot/internal/utils/wallet"
)

// Platform is the part of the quest platform the engine drives for one account.
type Platform interface {
	AllQuests(ctx context.Context, subdomain string) []quest.Quest
	SubmitClaim(ctx context.Context, subdomain string, s crew3.Submission) (*crew3.ClaimResponse, error)
	UpdateSettings(ctx context.Context, subdomain string, form crew3.SettingsForm) (*account.Account, error)
}

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeAlreadyClaimed Outcome = "already_claimed"
	OutcomeAnswerRequired Outcome = "answer_required"
	OutcomeRemoteError    Outcome = "remote_error"
)

// Result is the terminal state of one claim attempt.
type Result struct {
	Outcome  Outcome `json:"outcome"`
	Quest    string  `json:"quest"`
	Points   int     `json:"points,omitempty"`
	Question string  `json:"question,omitempty"`
	Message  string  `json:"message,omitempty"`
}

func (r Result) String() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return fmt.Sprintf("Claim *%s*, earn *%d* points", r.Quest, r.Points)
	case OutcomeAlreadyClaimed:
		return r.Quest + " already claimed!"
	case OutcomeAnswerRequired:
		return fmt.Sprintf("Quest _%s_ require answer: %s", r.Quest, r.Question)
	default:
		return r.Message
	}
}

// Submitted reports whether the attempt reached the platform.
func (r Result) Submitted() bool {
	return r.Outcome != OutcomeAnswerRequired
}

// Engine claims quests for one account.
type Engine struct {
	platform Platform
	pacer    pacing.Pacer
	logger   zerolog.Logger
}

func NewEngine(platform Platform, pacer pacing.Pacer, logger zerolog.Logger) *Engine {
	if pacer == nil {
		pacer = pacing.Jittered{}
	}
	return &Engine{platform: platform, pacer: pacer, logger: logger}
}

// ClaimQuest submits quest in the subdomain community. Types that need a
// recorded answer are never submitted without one.
func (e *Engine) ClaimQuest(ctx context.Context, subdomain string, q quest.Quest, answer string) Result {
	if answer == "" && q.SubmissionType.RequiresAnswer() {
		e.logger.Info().
			Err(apperrors.NewAnswerMissingError(subdomain, q.Name)).
			Str("type", string(q.SubmissionType)).
			Msg("Quest not submitted")
		return Result{Outcome: OutcomeAnswerRequired, Quest: q.Name, Question: q.ValidationData.Describe()}
	}

	e.logger.Debug().
		Str("subdomain", subdomain).
		Str("type", string(q.SubmissionType)).
		Str("quest", q.Name).
		Msg("Try to claim quest")

	resp, err := e.platform.SubmitClaim(ctx, subdomain, crew3.Submission{
		QuestID: q.ID,
		Type:    q.SubmissionType,
		Value:   answer,
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("subdomain", subdomain).Str("quest", q.Name).Msg("Claim failed")
		return Result{
			Outcome: OutcomeRemoteError,
			Quest:   q.Name,
			Message: crew3.Describe(err, "Something wrong with "+q.Name),
		}
	}

	e.logger.Debug().Str("status", resp.Status).Str("quest", q.Name).Msg("Claim status")
	if resp.Accepted() {
		return Result{Outcome: OutcomeSuccess, Quest: q.Name, Points: resp.XP}
	}
	return Result{Outcome: OutcomeAlreadyClaimed, Quest: q.Name}
}

// Settings is a profile change. A non-empty Address switches the linked
// wallet, otherwise the username and displayed socials are updated.
type Settings struct {
	Address    string `json:"address,omitempty"`
	Blockchain string `json:"blockchain,omitempty"`
	Username   string `json:"username,omitempty"`
}

// ChangeSettings updates the account profile through the subdomain community.
// Remote failures are returned as REMOTE_REJECTED errors carrying the
// platform's message.
func (e *Engine) ChangeSettings(ctx context.Context, subdomain string, s Settings) (*account.Account, error) {
	var form crew3.SettingsForm
	if s.Address != "" {
		chain := s.Blockchain
		if chain == "" {
			chain = wallet.ChainEthereum
		}
		addr, err := wallet.Normalize(chain, s.Address)
		if err != nil {
			return nil, apperrors.NewValidationError("address", err.Error())
		}
		form = crew3.SettingsForm{Address: addr, Blockchain: chain}
	} else {
		username := s.Username
		if username == "" {
			username = gofakeit.Username()
		}
		form = crew3.SettingsForm{Username: username, DisplayedInformation: []string{"discord", "twitter"}}
	}

	e.logger.Info().Str("subdomain", subdomain).Str("username", form.Username).Msg("Try to change settings")
	u, err := e.platform.UpdateSettings(ctx, subdomain, form)
	if err != nil {
		msg := crew3.Describe(err, "Something wrong with changing "+subdomain)
		e.logger.Warn().Err(err).Str("subdomain", subdomain).Msg("Settings not changed")
		return nil, apperrors.NewRemoteRejectedError("change settings", statusOf(err), msg)
	}
	e.logger.Info().Str("name", u.DisplayName()).Msg("New user data")
	return u, nil
}

func statusOf(err error) int {
	var apiErr *crew3.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ClaimQuestsByType claims every unlocked quest of the requested types in each
// community. Quests needing an answer the bank does not hold are skipped
// without a line. Communities are processed in order with a pacing delay after
// each one. The result is never empty.
func (e *Engine) ClaimQuestsByType(
	ctx context.Context,
	communities []quest.Community,
	types []quest.SubmissionType,
	pace time.Duration,
	bank answers.Bank,
) []report.Line {
	lines := []report.Line{report.Header(fmt.Sprintf(
		"Start claim *%s* quests for %d communities:", quest.JoinTypes(types, ", "), len(communities)))}

	for _, community := range communities {
		if ctx.Err() != nil {
			break
		}
		lines = append(lines, e.claimCommunity(ctx, community, types, bank)...)
		if err := e.pacer.Pause(ctx, pace); err != nil {
			break
		}
	}

	if report.Entries(lines) == 0 {
		return []report.Line{report.Header(fmt.Sprintf(
			"No claimable quests with type *\"%s\"* in %d communities!", quest.JoinTypes(types, ","), len(communities)))}
	}
	return lines
}

type candidate struct {
	quest  quest.Quest
	answer string
}

func (e *Engine) claimCommunity(ctx context.Context, c quest.Community, types []quest.SubmissionType, bank answers.Bank) []report.Line {
	quests := quest.Filter(e.platform.AllQuests(ctx, c.Subdomain), quest.Unlocked, quest.OfType(types...))

	var todo []candidate
	for _, q := range quests {
		if !q.SubmissionType.RequiresAnswer() {
			todo = append(todo, candidate{quest: q})
			continue
		}
		answer, ok := bank.Lookup(c.Name, q.TrimmedName())
		if !ok {
			e.logger.Debug().Str("community", c.Name).Str("quest", q.Name).Msg("No recorded answer, skipped")
			continue
		}
		todo = append(todo, candidate{quest: q, answer: answer})
	}
	if len(todo) == 0 {
		return nil
	}

	lines := make([]report.Line, 0, len(todo)+1)
	lines = append(lines, report.Header(fmt.Sprintf("*%s* `%s` (%d quests):", c.Name, c.Subdomain, len(todo))))
	for _, t := range todo {
		lines = append(lines, report.Entry(e.ClaimQuest(ctx, c.Subdomain, t.quest, t.answer).String()))
	}
	return lines
}
