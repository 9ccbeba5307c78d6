package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-builders/questbot/internal/answers"
	"github.com/open-builders/questbot/internal/common/config"
	"github.com/open-builders/questbot/internal/domain/account"
	"github.com/open-builders/questbot/internal/domain/quest"
	"github.com/open-builders/questbot/internal/pacing"
	"github.com/open-builders/questbot/internal/platform/crew3"
	rplatform "github.com/open-builders/questbot/internal/platform/redis"
	"github.com/open-builders/questbot/internal/report"
	repo "github.com/open-builders/questbot/internal/repository/redis"
	"github.com/open-builders/questbot/internal/service/batch"
	"github.com/open-builders/questbot/internal/service/claim"
	"github.com/open-builders/questbot/internal/session"
	"github.com/open-builders/questbot/internal/workers"
)

const (
	testBotToken = "123456:test-token"
	adminID      = 42
	testWallet   = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
)

type fakeProfile struct {
	mu          sync.Mutex
	user        *account.Account
	userErr     error
	communities []quest.Community
	listing     []quest.Community
	boards      map[string][]quest.Quest

	submitted []crew3.Submission
	forms     []crew3.SettingsForm
}

func (p *fakeProfile) AllQuests(_ context.Context, subdomain string) []quest.Quest {
	return p.boards[subdomain]
}

func (p *fakeProfile) SubmitClaim(_ context.Context, _ string, s crew3.Submission) (*crew3.ClaimResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitted = append(p.submitted, s)
	return &crew3.ClaimResponse{Status: crew3.StatusSuccess, XP: 30}, nil
}

func (p *fakeProfile) UpdateSettings(_ context.Context, _ string, form crew3.SettingsForm) (*account.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forms = append(p.forms, form)
	u := *p.user
	if form.Address != "" {
		u.Wallet = form.Address
	} else {
		u.Name = &form.Username
	}
	return &u, nil
}

func (p *fakeProfile) User(context.Context) (*account.Account, error) {
	if p.userErr != nil {
		return nil, p.userErr
	}
	u := *p.user
	return &u, nil
}

func (p *fakeProfile) UserCommunities(context.Context) []quest.Community { return p.communities }

func (p *fakeProfile) ListCommunities(context.Context, string, int, int) []quest.Community {
	return p.listing
}

func (p *fakeProfile) JoinByReferral(context.Context, string, string) crew3.JoinOutcome {
	return crew3.JoinOutcome{Joined: true, Message: crew3.JoinedMessage}
}

func (p *fakeProfile) JoinCommunity(context.Context, string) bool { return true }

func (p *fakeProfile) LeaveCommunity(context.Context, string, string) error { return nil }

func (p *fakeProfile) SearchCommunity(_ context.Context, keyword string) (*quest.Community, bool) {
	for _, c := range p.listing {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(keyword)) {
			return &c, true
		}
	}
	return nil, false
}

func (p *fakeProfile) CommunityAnswers(context.Context, string, int, int) ([]answers.Record, error) {
	return nil, nil
}

func (p *fakeProfile) ReferralLink(_ context.Context, subdomain string) string {
	return "https://" + subdomain + ".crew3.xyz/invite/ref-" + subdomain
}

func (p *fakeProfile) CommunityStats(context.Context, string, string) quest.MemberStats {
	return quest.MemberStats{Invites: 2, Level: 3, Rank: 10, XP: 120}
}

func (p *fakeProfile) SiteURL(subdomain string) string {
	return "https://" + subdomain + ".crew3.xyz"
}

type env struct {
	router  http.Handler
	profile *fakeProfile
	roster  *repo.Roster
	store   *answers.RedisStore
	reports *report.RedisLog
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := rplatform.Open(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)

	name := "alice"
	fp := &fakeProfile{
		user:        &account.Account{ID: "u1", Name: &name, Wallet: testWallet, DiscordHandle: "alice#1"},
		communities: []quest.Community{{Subdomain: "acme", Name: "Acme!"}},
		listing:     []quest.Community{{Subdomain: "acme", Name: "Acme!", Blockchain: "eth"}, {Subdomain: "zeta", Name: "Zeta"}},
		boards: map[string][]quest.Quest{"acme": {
			{ID: "q1", Name: "Daily", SubmissionType: quest.SubmissionNone, Unlocked: true, Open: true},
			{ID: "q2", Name: "Capital?", SubmissionType: quest.SubmissionQuiz, Unlocked: true, Open: true},
			{ID: "q3", Name: "Locked", SubmissionType: quest.SubmissionNone, Open: true},
		}},
	}

	cfg := &config.Config{}
	cfg.Server.Origin = "http://localhost:3000"
	cfg.Telegram.BotToken = testBotToken
	cfg.Telegram.AdminIDs = []int64{adminID}
	cfg.Telegram.InitDataTTL = time.Hour
	cfg.Platform.SiteURL = "https://{subdomain}.crew3.xyz"

	roster := repo.NewRoster(rdb)
	store := answers.NewRedisStore(rdb, "redis://answers")
	reports := report.NewRedisLog(rdb, time.Hour)
	orch := batch.New(roster, func(session.Credential) batch.Profile { return fp }, store,
		&pacing.Recorder{}, batch.Pacing{}, zerolog.Nop())

	router := NewRouter(Deps{
		Config:    cfg,
		Roster:    roster,
		Connect:   func(session.Credential) Profile { return fp },
		Answers:   store,
		Referrals: orch,
		Jobs:      workers.NewJobQueue(rdb),
		Reports:   reports,
		Cache:     rdb,
		Pacer:     &pacing.Recorder{},
		Logger:    zerolog.Nop(),
	})
	return &env{router: router, profile: fp, roster: roster, store: store, reports: reports}
}

func initData(t *testing.T, userID int64) string {
	t.Helper()
	user, err := json.Marshal(map[string]any{"id": userID, "first_name": "Op"})
	require.NoError(t, err)
	params := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      string(user),
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return q.Encode()
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("init_data", initData(t, adminID))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) importAlice(t *testing.T) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/accounts", ImportRequest{Headers: map[string]string{"Cookie": "session=abc; subdomain=root"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthIsPublicAndAPIIsNot(t *testing.T) {
	e := newEnv(t)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("init_data", initData(t, 7))
	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestImportAccount(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	list := decode[[]account.Account](t, e.do(t, http.MethodGet, "/accounts", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].ID)

	cred, err := e.roster.Credential(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cred.AccountID)
	assert.Equal(t, "session=abc; subdomain=root", cred.Cookie())

	w := e.do(t, http.MethodGet, "/wallets/"+strings.ToLower(testWallet), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"alice#1"}, decode[[]string](t, e.do(t, http.MethodGet, "/socials/discords", nil)))
	assert.Equal(t, []string{}, decode[[]string](t, e.do(t, http.MethodGet, "/socials/twitters", nil)))
}

func TestImportAccountRejects(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/accounts", ImportRequest{Headers: map[string]string{"origin": "x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/accounts", ImportRequest{
		Headers: map[string]string{"cookie": "session=abc"},
		Wallet:  "0x0000000000000000000000000000000000000001",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/accounts", ImportRequest{Headers: map[string]string{"cookie": "session=abc"}, Wallet: "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list := decode[[]account.Account](t, e.do(t, http.MethodGet, "/accounts", nil))
	assert.Empty(t, list)
}

func TestDeleteAccount(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, "/accounts/u1", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/accounts/u1", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, "/accounts/u1", nil).Code)
}

func TestClaimQuestUsesBankAndNeverGuesses(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	res := decode[claim.Result](t, e.do(t, http.MethodPost, "/accounts/u1/communities/acme/quests/q2/claim", nil))
	assert.Equal(t, claim.OutcomeAnswerRequired, res.Outcome)
	assert.Empty(t, e.profile.submitted)

	_, err := e.store.Write(context.Background(), answers.CommunityKey("Acme!"), []answers.Record{{Question: "Capital?", Answer: "Paris"}})
	require.NoError(t, err)

	res = decode[claim.Result](t, e.do(t, http.MethodPost, "/accounts/u1/communities/acme/quests/q2/claim", nil))
	assert.Equal(t, claim.OutcomeSuccess, res.Outcome)
	assert.Equal(t, 30, res.Points)
	require.Len(t, e.profile.submitted, 1)
	assert.Equal(t, "Paris", e.profile.submitted[0].Value)

	res = decode[claim.Result](t, e.do(t, http.MethodPost, "/accounts/u1/communities/acme/quests/q2/claim", ClaimRequest{Answer: "Lyon"}))
	assert.Equal(t, claim.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Lyon", e.profile.submitted[1].Value)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/accounts/u1/communities/acme/quests/nope/claim", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/accounts/ghost/communities/acme/quests/q1/claim", nil).Code)
}

func TestListQuestsFilters(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	all := decode[[]quest.Quest](t, e.do(t, http.MethodGet, "/accounts/u1/communities/acme/quests", nil))
	assert.Len(t, all, 3)

	unlocked := decode[[]quest.Quest](t, e.do(t, http.MethodGet, "/accounts/u1/communities/acme/quests?types=none&unlocked=true", nil))
	require.Len(t, unlocked, 1)
	assert.Equal(t, "q1", unlocked[0].ID)
}

func TestChangeSettings(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	w := e.do(t, http.MethodPut, "/accounts/u1/communities/acme/settings", claim.Settings{Address: "0xnot"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPut, "/accounts/u1/communities/acme/settings", claim.Settings{Address: strings.ToLower(testWallet)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, e.profile.forms, 1)
	assert.Equal(t, testWallet, e.profile.forms[0].Address)
	assert.Equal(t, "ethereum", e.profile.forms[0].Blockchain)

	w = e.do(t, http.MethodPut, "/accounts/u1/communities/acme/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, e.profile.forms, 2)
	assert.NotEmpty(t, e.profile.forms[1].Username)

	stored, err := e.roster.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, e.profile.forms[1].Username, stored.DisplayName())
}

func TestCommunities(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	cards := decode[[]CommunityCard](t, e.do(t, http.MethodGet, "/communities?category=DAO", nil))
	require.Len(t, cards, 2)
	assert.True(t, strings.HasPrefix(cards[0].Card, "*Acme!*"))
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/communities?from=3&to=1", nil).Code)

	found := decode[CommunityCard](t, e.do(t, http.MethodGet, "/communities/search?q=zeta", nil))
	assert.Equal(t, "zeta", found.Subdomain)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/communities/search?q=nothing", nil).Code)

	joined := decode[[]CommunityCard](t, e.do(t, http.MethodGet, "/accounts/u1/communities", nil))
	require.Len(t, joined, 1)
	stats := decode[quest.MemberStats](t, e.do(t, http.MethodGet, "/accounts/u1/communities/acme/stats", nil))
	assert.Equal(t, 120, stats.XP)
}

func TestReferralLinks(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	resp := decode[ReportResponse](t, e.do(t, http.MethodGet, "/accounts/u1/referrals", nil))
	require.Len(t, resp.Lines, 1)
	assert.Contains(t, resp.Text, "https://acme.crew3.xyz/invite/ref-acme")
}

func TestAnswers(t *testing.T) {
	e := newEnv(t)
	_, err := e.store.Write(context.Background(), "Acme", []answers.Record{{Question: "B", Answer: "2"}, {Question: "A", Answer: "1"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme"}, decode[[]string](t, e.do(t, http.MethodGet, "/answers", nil)))
	records := decode[[]answers.Record](t, e.do(t, http.MethodGet, "/answers/Acme!", nil))
	assert.Equal(t, []answers.Record{{Question: "A", Answer: "1"}, {Question: "B", Answer: "2"}}, records)
	assert.Equal(t, []answers.Record{}, decode[[]answers.Record](t, e.do(t, http.MethodGet, "/answers/Other", nil)))
}

func TestEnqueueJobs(t *testing.T) {
	e := newEnv(t)
	e.importAlice(t)

	w := e.do(t, http.MethodPost, "/jobs", JobRequest{Kind: batch.KindJoin, All: true, InviteLink: "https://acme.crew3.xyz/invite/abc 3"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	accepted := decode[JobAccepted](t, w)
	require.NotEmpty(t, accepted.ID)

	require.NoError(t, e.reports.For(accepted.ID).Report(context.Background(), report.Summary("Joined 1 accounts complete!")))
	job := decode[JobResponse](t, e.do(t, http.MethodGet, "/jobs/"+accepted.ID, nil))
	assert.Equal(t, workers.StateQueued, job.Status.State)
	assert.Equal(t, batch.KindJoin, job.Status.Kind)
	assert.Equal(t, "Joined 1 accounts complete!", job.Text)

	tests := []JobRequest{
		{Kind: batch.KindClaim, AccountIDs: []string{"u1"}, Group: "nope"},
		{Kind: batch.KindJoin, AccountIDs: []string{"u1"}, InviteLink: "not a link"},
		{Kind: batch.KindLeave},
		{Kind: "dance", AccountIDs: []string{"u1"}},
	}
	for _, req := range tests {
		assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/jobs", req).Code, req)
	}

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/jobs/missing", nil).Code)
}
