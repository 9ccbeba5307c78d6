package crew3

import (
	"context"
	"fmt"
	"net/url"
	"time"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/account"
	"github.com/open-builders/questbot/internal/domain/quest"
)

// Listing calls degrade to empty results on failure.

type communitiesPage struct {
	Communities []quest.Community `json:"communities"`
}

// User fetches the account profile. An error means the account is not connected.
func (c *Client) User(ctx context.Context) (*account.Account, error) {
	var u account.Account
	if err := c.get(ctx, "get user", "users/me", "", &u); err != nil {
		c.logger.Debug().Err(err).Msg("User not connected to Crew3")
		return nil, apperrors.NewAuthUnavailableError(c.cred.AccountID, err)
	}
	return &u, nil
}

// UserCommunities lists the communities the account has joined.
func (c *Client) UserCommunities(ctx context.Context) []quest.Community {
	var page communitiesPage
	if err := c.get(ctx, "get user communities", "users/me/communities", "", &page); err != nil {
		c.logger.Warn().Err(err).Msg("User not connected to Crew3")
		return []quest.Community{}
	}
	return nonNil(page.Communities)
}

// ListCommunities walks listing pages [from, to) of a category, stopping at the
// first empty page. A failed page counts as empty. Non-empty pages are followed
// by a pacing delay.
func (c *Client) ListCommunities(ctx context.Context, category string, from, to int) []quest.Community {
	communities := []quest.Community{}
	for i := from; i < to; i++ {
		c.logger.Debug().Str("category", category).Int("page", i).Msg("Parse communities page")
		endpoint := fmt.Sprintf("communities?page=%d&category=%s", i, url.QueryEscape(category))

		var page communitiesPage
		if err := c.get(ctx, "list communities", endpoint, "", &page); err != nil {
			c.logger.Warn().Err(err).Str("category", category).Int("page", i).Msg("Community page unavailable")
			break
		}
		if len(page.Communities) == 0 {
			break
		}
		communities = append(communities, page.Communities...)
		if err := c.pause(ctx, c.opts.PagePacing); err != nil {
			break
		}
	}
	c.logger.Info().Str("category", category).Int("count", len(communities)).Msg("Communities found")
	return communities
}

// QuestBoard fetches the themed quest groups of a community.
func (c *Client) QuestBoard(ctx context.Context, subdomain string) []quest.Theme {
	var board []quest.Theme
	endpoint := "communities/" + url.PathEscape(subdomain) + "/questboard"
	if err := c.get(ctx, "get questboard", endpoint, subdomain, &board); err != nil {
		c.logger.Warn().Err(err).Str("subdomain", subdomain).Msg("Quest board unavailable, community is private?")
		return []quest.Theme{}
	}
	return nonNil(board)
}

// AllQuests flattens the quest board into one ordered sequence.
func (c *Client) AllQuests(ctx context.Context, subdomain string) []quest.Quest {
	return nonNil(quest.Flatten(c.QuestBoard(ctx, subdomain)))
}

// SearchCommunity returns the first community matching keyword.
func (c *Client) SearchCommunity(ctx context.Context, keyword string) (*quest.Community, bool) {
	endpoint := "communities/search?" + url.Values{"search": {keyword}}.Encode() + "&limit=10"
	var found []quest.Community
	if err := c.get(ctx, "search community", endpoint, "", &found); err != nil {
		c.logger.Warn().Err(err).Str("keyword", keyword).Msg("Community search failed")
		return nil, false
	}
	if len(found) == 0 {
		return nil, false
	}
	return &found[0], true
}

// CommunityStats returns the member standing of userID, zero values when unavailable.
func (c *Client) CommunityStats(ctx context.Context, subdomain, userID string) quest.MemberStats {
	var stats quest.MemberStats
	endpoint := "communities/" + url.PathEscape(subdomain) + "/users/" + url.PathEscape(userID)
	if err := c.get(ctx, "get community stats", endpoint, "", &stats); err != nil {
		c.logger.Debug().Err(err).Str("subdomain", subdomain).Msg("Data from community unavailable")
		return quest.MemberStats{}
	}
	return stats
}

func (c *Client) pause(ctx context.Context, base time.Duration) error {
	if c.pacer == nil {
		return ctx.Err()
	}
	return c.pacer.Pause(ctx, base)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
