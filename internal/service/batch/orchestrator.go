// Package batch runs claim, join and leave workflows over a set of accounts.
// Accounts are processed one at a time in a shuffled order and every account
// gets a report before the next one starts.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/open-builders/questbot/internal/answers"
	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/account"
	"github.com/open-builders/questbot/internal/domain/quest"
	"github.com/open-builders/questbot/internal/pacing"
	"github.com/open-builders/questbot/internal/platform/crew3"
	"github.com/open-builders/questbot/internal/report"
	"github.com/open-builders/questbot/internal/service/claim"
	"github.com/open-builders/questbot/internal/session"
	"github.com/open-builders/questbot/internal/utils/random"
)

// Roster is read-only access to the managed accounts.
type Roster interface {
	Get(ctx context.Context, id string) (*account.Account, error)
	Credential(ctx context.Context, id string) (session.Credential, error)
}

// Profile is one account's connection to the quest platform.
type Profile interface {
	claim.Platform
	User(ctx context.Context) (*account.Account, error)
	UserCommunities(ctx context.Context) []quest.Community
	ListCommunities(ctx context.Context, category string, from, to int) []quest.Community
	JoinByReferral(ctx context.Context, subdomain, inviteID string) crew3.JoinOutcome
	JoinCommunity(ctx context.Context, subdomain string) bool
	LeaveCommunity(ctx context.Context, subdomain, userID string) error
	SearchCommunity(ctx context.Context, keyword string) (*quest.Community, bool)
	CommunityAnswers(ctx context.Context, subdomain string, page, size int) ([]answers.Record, error)
	ReferralLink(ctx context.Context, subdomain string) string
}

// Connector opens a platform profile for a credential. The zero credential
// yields an anonymous profile.
type Connector func(cred session.Credential) Profile

// Pacing holds the base delays of the batch loops.
type Pacing struct {
	Claim     time.Duration
	Short     time.Duration
	Community time.Duration
}

// Groups maps operator facing claim groups to submission types.
var Groups = map[string][]quest.SubmissionType{
	"daily":   {quest.SubmissionNone, quest.SubmissionTelegram},
	"quiz":    {quest.SubmissionQuiz, quest.SubmissionText},
	"discord": {quest.SubmissionDiscord},
	"twitter": {quest.SubmissionTwitter},
	"social":  {quest.SubmissionTwitter, quest.SubmissionDiscord},
	"any":     {quest.SubmissionNone, quest.SubmissionTelegram, quest.SubmissionQuiz, quest.SubmissionText},
}

// autoClaimTypes are claimed right after a successful referral join.
var autoClaimTypes = []quest.SubmissionType{
	quest.SubmissionNone, quest.SubmissionText, quest.SubmissionTelegram, quest.SubmissionQuiz,
}

const answersPageSize = 500

type Orchestrator struct {
	roster  Roster
	connect Connector
	store   answers.Store
	pacer   pacing.Pacer
	pacing  Pacing
	logger  zerolog.Logger

	shuffle func([]string) ([]string, error)
}

func New(roster Roster, connect Connector, store answers.Store, pacer pacing.Pacer, p Pacing, logger zerolog.Logger) *Orchestrator {
	if pacer == nil {
		pacer = pacing.Jittered{}
	}
	return &Orchestrator{
		roster:  roster,
		connect: connect,
		store:   store,
		pacer:   pacer,
		pacing:  p,
		logger:  logger,
		shuffle: random.Shuffled[string],
	}
}

// member is an account resolved for one batch step.
type member struct {
	id      string
	name    string
	account *account.Account
	profile Profile
}

func (o *Orchestrator) resolve(ctx context.Context, id string) (*member, error) {
	acc, err := o.roster.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cred, err := o.roster.Credential(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cred.HasCookie() {
		o.logger.Warn().Str("account_id", id).Msg("Credential has no cookie")
	}
	return &member{id: id, name: acc.DisplayName(), account: acc, profile: o.connect(cred)}, nil
}

func (o *Orchestrator) order(ids []string) []string {
	shuffled, err := o.shuffle(ids)
	if err != nil {
		o.logger.Warn().Err(err).Msg("Shuffle failed, using input order")
		return append([]string(nil), ids...)
	}
	return shuffled
}

// readBank loads the answer bank once for a run. A failing store yields an
// empty bank, so answer types are skipped rather than guessed.
func (o *Orchestrator) readBank(ctx context.Context) answers.Bank {
	if o.store == nil {
		return answers.Bank{}
	}
	bank, err := o.store.Read(ctx)
	if err != nil {
		o.logger.Error().Err(err).Msg("Answer bank unavailable")
		return answers.Bank{}
	}
	return bank
}

func (o *Orchestrator) emit(ctx context.Context, out report.Reporter, lines ...report.Line) {
	if err := out.Report(ctx, lines...); err != nil {
		o.logger.Warn().Err(err).Msg("Report delivery failed")
	}
}

func (o *Orchestrator) unavailable(id string, err error) report.Line {
	o.logger.Warn().Err(err).Str("account_id", id).Msg("Account unavailable")
	return report.Outcome(id, id, "Account unavailable: "+errorText(err))
}

func errorText(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

// ClaimBatch claims the quests of a type group for every account.
func (o *Orchestrator) ClaimBatch(ctx context.Context, ids []string, group string, out report.Reporter) error {
	types, ok := Groups[group]
	if !ok {
		return apperrors.NewValidationError("group", fmt.Sprintf("unknown claim group %q", group))
	}
	bank := o.readBank(ctx)

	for _, id := range o.order(ids) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		o.emit(ctx, out, o.claimAccount(ctx, id, types, bank)...)
		if err := o.pacer.Pause(ctx, o.pacing.Claim); err != nil {
			return err
		}
	}
	o.emit(ctx, out, report.Summary(fmt.Sprintf("Claim complete for %d accounts!", len(ids))))
	return nil
}

// claimAccount runs one account's claim: profile sync when the account has no
// name yet, then every joined community.
func (o *Orchestrator) claimAccount(ctx context.Context, id string, types []quest.SubmissionType, bank answers.Bank) []report.Line {
	m, err := o.resolve(ctx, id)
	if err != nil {
		return []report.Line{o.unavailable(id, err)}
	}
	communities := m.profile.UserCommunities(ctx)
	engine := claim.NewEngine(m.profile, o.pacer, o.logger.With().Str("account_id", id).Logger())

	if !m.account.HasName() && len(communities) > 0 {
		if _, err := engine.ChangeSettings(ctx, communities[0].Subdomain, claim.Settings{}); err != nil {
			o.logger.Warn().Err(err).Str("account_id", id).Msg("Profile sync failed")
		}
	}
	if u, err := m.profile.User(ctx); err == nil {
		m.name = u.DisplayName()
	}

	lines := engine.ClaimQuestsByType(ctx, communities, types, o.pacing.Community, bank)
	lines = append([]report.Line{report.Header("*" + m.name + ":*")}, lines...)
	return report.ForAccount(lines, id, m.name)
}

// JoinByReferral redeems an invite for up to limit accounts (all when limit <= 0).
// Every id produces exactly one outcome line; ids past the limit are reported
// as skipped. Joined accounts immediately claim their basic quests.
func (o *Orchestrator) JoinByReferral(ctx context.Context, ids []string, subdomain, inviteID string, limit int, out report.Reporter) error {
	if limit <= 0 {
		limit = len(ids)
	}
	bank := o.readBank(ctx)
	joined := 0

	for _, id := range o.order(ids) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if joined >= limit {
			o.emit(ctx, out, report.Outcome(id, o.nameOf(ctx, id), "Skipped, join limit reached"))
			continue
		}

		m, err := o.resolve(ctx, id)
		if err != nil {
			o.emit(ctx, out, o.unavailable(id, err))
			continue
		}

		res := m.profile.JoinByReferral(ctx, subdomain, inviteID)
		if !res.Joined {
			o.emit(ctx, out, report.Outcome(id, m.name, res.Message))
			if err := o.pacer.Pause(ctx, o.pacing.Short); err != nil {
				return err
			}
			continue
		}

		joined++
		o.emit(ctx, out, report.Outcome(id, m.name, res.Message+"\nAutostart claiming..."))
		o.emit(ctx, out, o.claimAccount(ctx, id, autoClaimTypes, bank)...)
		if err := o.pacer.Pause(ctx, o.pacing.Claim); err != nil {
			return err
		}
	}
	o.emit(ctx, out, report.Summary(fmt.Sprintf("Joined %d accounts complete!", joined)))
	return nil
}

func (o *Orchestrator) nameOf(ctx context.Context, id string) string {
	acc, err := o.roster.Get(ctx, id)
	if err != nil {
		return id
	}
	return acc.DisplayName()
}

// ResolveCommunity maps a leave target to a subdomain: a search hit whose
// subdomain or name matches exactly, otherwise the target itself.
func (o *Orchestrator) ResolveCommunity(ctx context.Context, target string) string {
	target = strings.TrimSpace(target)
	found, ok := o.connect(session.Credential{}).SearchCommunity(ctx, target)
	if ok && (found.Subdomain == target || found.Name == target) {
		return found.Subdomain
	}
	return target
}

// Leave removes every account from the community named by target.
func (o *Orchestrator) Leave(ctx context.Context, ids []string, target string, out report.Reporter) error {
	subdomain := o.ResolveCommunity(ctx, target)
	o.logger.Info().Str("target", target).Str("subdomain", subdomain).Int("accounts", len(ids)).Msg("Leave community")

	for _, id := range o.order(ids) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		o.emit(ctx, out, o.leaveAccount(ctx, id, subdomain))
		if err := o.pacer.Pause(ctx, o.pacing.Short); err != nil {
			return err
		}
	}
	o.emit(ctx, out, report.Summary("Operation complete"))
	return nil
}

func (o *Orchestrator) leaveAccount(ctx context.Context, id, subdomain string) report.Line {
	m, err := o.resolve(ctx, id)
	if err != nil {
		return o.unavailable(id, err)
	}
	if err := m.profile.LeaveCommunity(ctx, subdomain, m.account.ID); err != nil {
		o.logger.Warn().Err(err).Str("account_id", id).Str("subdomain", subdomain).Msg("Leave failed")
		return report.Outcome(id, m.name, crew3.Describe(err, "error"))
	}
	return report.Outcome(id, m.name, "success")
}

// JoinCommunities joins one account to public communities without an invite.
func (o *Orchestrator) JoinCommunities(ctx context.Context, id string, communities []quest.Community, out report.Reporter) error {
	m, err := o.resolve(ctx, id)
	if err != nil {
		o.emit(ctx, out, o.unavailable(id, err))
		return nil
	}

	lines := []report.Line{report.Header(fmt.Sprintf("Start join to %d communities:", len(communities)))}
	for _, c := range communities {
		switch {
		case c.IsPrivate():
			lines = append(lines, report.Entry(c.Name+" is private! Can't subscribe to it."))
		case m.profile.JoinCommunity(ctx, c.Subdomain):
			lines = append(lines, report.Entry("Community "+c.Name+" was joined successfully ✅."))
		default:
			lines = append(lines, report.Entry("Couldn't join "+c.Name+" ❌."))
		}
		if err := o.pacer.Pause(ctx, o.pacing.Community); err != nil {
			break
		}
	}
	o.emit(ctx, out, report.ForAccount(lines, id, m.name)...)
	return ctx.Err()
}

// RecordAnswers copies the account's accepted quiz and text answers from every
// joined community into the answer bank.
func (o *Orchestrator) RecordAnswers(ctx context.Context, id string, out report.Reporter) error {
	if o.store == nil {
		return apperrors.New(apperrors.ErrCodeStorage, "answer store is not configured")
	}
	m, err := o.resolve(ctx, id)
	if err != nil {
		o.emit(ctx, out, o.unavailable(id, err))
		return nil
	}

	location, recorded := "", 0
	for _, c := range m.profile.UserCommunities(ctx) {
		records, err := m.profile.CommunityAnswers(ctx, c.Subdomain, 0, answersPageSize)
		if err != nil {
			o.logger.Warn().Err(err).Str("subdomain", c.Subdomain).Msg("Answers unavailable")
			continue
		}
		loc, err := o.store.Write(ctx, answers.CommunityKey(c.Name), records)
		if err != nil {
			return err
		}
		location = loc
		recorded += len(records)
	}

	o.emit(ctx, out, report.Outcome(id, m.name,
		fmt.Sprintf("Recorded %d answers: %s", recorded, location)))
	return nil
}

// ReferralLinks lists the account's invite link for every joined community.
func (o *Orchestrator) ReferralLinks(ctx context.Context, id string) ([]report.Line, error) {
	m, err := o.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	var lines []report.Line
	for _, c := range m.profile.UserCommunities(ctx) {
		lines = append(lines, report.Entry(fmt.Sprintf("*%s*\n`%s`", c.Name, m.profile.ReferralLink(ctx, c.Subdomain))))
	}
	return report.ForAccount(lines, id, m.name), nil
}
