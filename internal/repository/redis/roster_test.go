package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/account"
	rplatform "github.com/open-builders/questbot/internal/platform/redis"
	"github.com/open-builders/questbot/internal/session"
)

func newRoster(t *testing.T) *Roster {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &rplatform.Client{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Close() })
	return NewRoster(client)
}

func TestRosterSaveAndGet(t *testing.T) {
	r := newRoster(t)
	ctx := context.Background()

	name := "alice"
	acc := account.Account{ID: "u1", Name: &name, Wallet: "0xAbC", Linked: []account.LinkedAccount{{Type: "wallet"}, {Type: "discord"}}, DiscordHandle: "alice#1"}
	cred := session.New("", map[string]string{"Cookie": "s=1; subdomain=root"}, "https://{subdomain}.crew3.xyz")
	require.NoError(t, r.Save(ctx, acc, cred))
	require.NoError(t, r.Save(ctx, account.Account{ID: "u0", TwitterUsername: "bob"}, session.Credential{}))

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.DisplayName())

	gotCred, err := r.Credential(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", gotCred.AccountID)
	assert.Equal(t, "s=1; subdomain=root", gotCred.Cookie())

	ids, err := r.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u0", "u1"}, ids)

	found, err := r.FindByWallet(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	social, err := r.WithSocials(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, social)

	discords, err := r.Discords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice#1"}, discords)

	twitters, err := r.Twitters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://twitter.com/bob"}, twitters)
}

func TestRosterMissingAndDelete(t *testing.T) {
	r := newRoster(t)
	ctx := context.Background()

	_, err := r.Get(ctx, "nope")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	_, err = r.Credential(ctx, "nope")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	err = r.UpdateProfile(ctx, account.Account{ID: "nope"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	_, err = r.FindByWallet(ctx, "0x1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	assert.Error(t, r.Save(ctx, account.Account{}, session.Credential{}))

	require.NoError(t, r.Save(ctx, account.Account{ID: "u1"}, session.Credential{}))
	name := "renamed"
	require.NoError(t, r.UpdateProfile(ctx, account.Account{ID: "u1", Name: &name}))
	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.DisplayName())

	require.NoError(t, r.Delete(ctx, "u1"))
	ids, err := r.IDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
