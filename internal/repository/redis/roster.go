package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/account"
	rplatform "github.com/open-builders/questbot/internal/platform/redis"
	"github.com/open-builders/questbot/internal/session"
)

const (
	keyAccounts    = "roster:accounts"
	keyCredentials = "roster:credentials"
)

// Roster stores accounts and their credentials in two Redis hashes keyed by account id.
type Roster struct {
	rdb *rplatform.Client
}

func NewRoster(rdb *rplatform.Client) *Roster {
	return &Roster{rdb: rdb}
}

// Save stores the account profile together with its credential.
func (r *Roster) Save(ctx context.Context, a account.Account, cred session.Credential) error {
	if a.ID == "" {
		return apperrors.NewValidationError("id", "account id is empty")
	}
	cred.AccountID = a.ID
	rawAccount, err := json.Marshal(a)
	if err != nil {
		return apperrors.NewStorageError("encode account", err)
	}
	rawCred, err := json.Marshal(cred)
	if err != nil {
		return apperrors.NewStorageError("encode credential", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, keyAccounts, a.ID, rawAccount)
		pipe.HSet(ctx, keyCredentials, a.ID, rawCred)
		return nil
	})
	if err != nil {
		return apperrors.NewStorageError("save account", err)
	}
	return nil
}

// UpdateProfile replaces the stored profile of an existing account.
func (r *Roster) UpdateProfile(ctx context.Context, a account.Account) error {
	exists, err := r.rdb.HExists(ctx, keyAccounts, a.ID).Result()
	if err != nil {
		return apperrors.NewStorageError("check account", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("account", a.ID)
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return apperrors.NewStorageError("encode account", err)
	}
	if err := r.rdb.HSet(ctx, keyAccounts, a.ID, raw).Err(); err != nil {
		return apperrors.NewStorageError("update account", err)
	}
	return nil
}

func (r *Roster) Get(ctx context.Context, id string) (*account.Account, error) {
	raw, err := r.rdb.HGet(ctx, keyAccounts, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewNotFoundError("account", id)
	}
	if err != nil {
		return nil, apperrors.NewStorageError("get account", err)
	}
	var a account.Account
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, apperrors.NewStorageError("decode account", err)
	}
	return &a, nil
}

func (r *Roster) Credential(ctx context.Context, id string) (session.Credential, error) {
	raw, err := r.rdb.HGet(ctx, keyCredentials, id).Result()
	if errors.Is(err, redis.Nil) {
		return session.Credential{}, apperrors.NewNotFoundError("credential", id)
	}
	if err != nil {
		return session.Credential{}, apperrors.NewStorageError("get credential", err)
	}
	var cred session.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return session.Credential{}, apperrors.NewStorageError("decode credential", err)
	}
	return cred, nil
}

// IDs returns every account id, sorted.
func (r *Roster) IDs(ctx context.Context) ([]string, error) {
	ids, err := r.rdb.HKeys(ctx, keyAccounts).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("list accounts", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// List returns every account sorted by id. Undecodable entries are skipped.
func (r *Roster) List(ctx context.Context) ([]account.Account, error) {
	all, err := r.rdb.HGetAll(ctx, keyAccounts).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("list accounts", err)
	}
	out := make([]account.Account, 0, len(all))
	for _, raw := range all {
		var a account.Account
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Roster) Delete(ctx context.Context, id string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, keyAccounts, id)
		pipe.HDel(ctx, keyCredentials, id)
		return nil
	})
	if err != nil {
		return apperrors.NewStorageError("delete account", err)
	}
	return nil
}

// FindByWallet looks an account up by its primary wallet, case-insensitively.
func (r *Roster) FindByWallet(ctx context.Context, address string) (*account.Account, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].OwnsWallet(address) {
			return &all[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("account", address)
}

// WithSocials returns the ids of accounts that linked anything beyond their wallet.
func (r *Roster) WithSocials(ctx context.Context) ([]string, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, a := range all {
		if a.HasSocials() {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

// Discords lists the linked Discord handles.
func (r *Roster) Discords(ctx context.Context) ([]string, error) {
	return r.collect(ctx, func(a account.Account) string { return a.DiscordHandle })
}

// Twitters lists profile links of the linked Twitter accounts.
func (r *Roster) Twitters(ctx context.Context) ([]string, error) {
	return r.collect(ctx, func(a account.Account) string {
		if a.TwitterUsername == "" {
			return ""
		}
		return "https://twitter.com/" + a.TwitterUsername
	})
}

func (r *Roster) collect(ctx context.Context, pick func(account.Account) string) ([]string, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, a := range all {
		if v := pick(a); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}
