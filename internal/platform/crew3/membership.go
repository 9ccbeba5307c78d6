package crew3

import (
	"context"
	"net/http"
	"net/url"
)

const (
	JoinedMessage      = "Successfully joined to community!"
	WrongInviteMessage = "Wrong invite link"
)

// JoinOutcome is the result of an invite redemption. Message is the success
// line or the platform's reason for refusing.
type JoinOutcome struct {
	Joined  bool
	Message string
}

// JoinByReferral opens the community invite page and accepts the invitation.
func (c *Client) JoinByReferral(ctx context.Context, subdomain, inviteID string) JoinOutcome {
	inviteURL := c.SiteURL(subdomain) + "/invite/" + url.PathEscape(inviteID)
	if err := c.do(ctx, "open invite", request{method: http.MethodGet, endpoint: inviteURL}, nil); err != nil {
		c.logger.Debug().Err(err).Str("subdomain", subdomain).Msg("Invite page rejected")
		return JoinOutcome{Message: Describe(err, WrongInviteMessage)}
	}

	payload := map[string]string{"invitationId": inviteID}
	if err := c.postJSON(ctx, "accept invitation", "users/me/accept-invitation", subdomain, payload, nil); err != nil {
		c.logger.Debug().Err(err).Str("subdomain", subdomain).Msg("Invitation not accepted")
		return JoinOutcome{Message: Describe(err, WrongInviteMessage)}
	}
	return JoinOutcome{Joined: true, Message: JoinedMessage}
}

// JoinCommunity joins a public community without an invite.
func (c *Client) JoinCommunity(ctx context.Context, subdomain string) bool {
	endpoint := "communities/" + url.PathEscape(subdomain) + "/members"
	if err := c.postJSON(ctx, "join community", endpoint, "", nil, nil); err != nil {
		c.logger.Warn().Err(err).Str("subdomain", subdomain).Msg("Join community failed")
		return false
	}
	return true
}

// LeaveCommunity removes userID from the community membership.
func (c *Client) LeaveCommunity(ctx context.Context, subdomain, userID string) error {
	endpoint := "communities/" + url.PathEscape(subdomain) + "/members/" + url.PathEscape(userID)
	return c.do(ctx, "leave community", request{method: http.MethodDelete, endpoint: endpoint}, nil)
}

// ReferralLink returns the account's invite URL for the community, the bare
// community site when the platform has none.
func (c *Client) ReferralLink(ctx context.Context, subdomain string) string {
	var ref struct {
		ID string `json:"id"`
	}
	endpoint := "communities/" + url.PathEscape(subdomain) + "/users/me/referral-link"
	if err := c.get(ctx, "get referral link", endpoint, "", &ref); err != nil || ref.ID == "" {
		return c.SiteURL(subdomain)
	}
	return c.SiteURL(subdomain) + "/invite/" + ref.ID
}
