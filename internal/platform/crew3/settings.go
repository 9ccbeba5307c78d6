package crew3

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/account"
)

// SettingsForm updates either the linked wallet or the public profile.
type SettingsForm struct {
	Address    string
	Blockchain string
	Username   string
	// DisplayedInformation lists the socials shown on the public profile.
	DisplayedInformation []string
}

func (f SettingsForm) fields() ([][2]string, error) {
	if f.Address != "" {
		return [][2]string{{"address", f.Address}, {"blockchain", f.Blockchain}}, nil
	}
	shown, err := json.Marshal(f.DisplayedInformation)
	if err != nil {
		return nil, err
	}
	return [][2]string{{"username", f.Username}, {"displayedInformation", string(shown)}}, nil
}

// UpdateSettings patches users/me and returns the refreshed profile.
func (c *Client) UpdateSettings(ctx context.Context, subdomain string, form SettingsForm) (*account.Account, error) {
	fields, err := form.fields()
	if err != nil {
		return nil, apperrors.NewTransportError("update settings", err)
	}
	body, contentType, err := multipartForm(fields)
	if err != nil {
		return nil, apperrors.NewTransportError("update settings", err)
	}

	var u account.Account
	err = c.do(ctx, "update settings", request{
		method:      http.MethodPatch,
		endpoint:    "users/me",
		subdomain:   subdomain,
		body:        body,
		contentType: contentType,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
