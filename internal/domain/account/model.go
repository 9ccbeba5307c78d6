package account

import "strings"

// Account is one automated identity on the quest platform, as reported by users/me.
// Name stays nil until the profile has been set up.
type Account struct {
	ID              string            `json:"id"`
	Name            *string           `json:"name"`
	TwitterUsername string            `json:"twitterUsername,omitempty"`
	DiscordHandle   string            `json:"discordHandle,omitempty"`
	Wallet          string            `json:"ethWallet,omitempty"`
	Addresses       map[string]string `json:"addresses,omitempty"`
	Linked          []LinkedAccount   `json:"accounts,omitempty"`
}

// LinkedAccount is a connected identity provider (wallet, twitter, discord...).
type LinkedAccount struct {
	Type string `json:"type"`
}

// DisplayName picks the first usable label for reports.
func (a Account) DisplayName() string {
	switch {
	case a.Name != nil && *a.Name != "":
		return *a.Name
	case a.DiscordHandle != "":
		return a.DiscordHandle
	case a.TwitterUsername != "":
		return a.TwitterUsername
	default:
		return "Null"
	}
}

// HasName reports whether the profile was already set up with a username.
func (a Account) HasName() bool {
	return a.Name != nil && *a.Name != ""
}

// HasSocials reports whether anything beyond the login wallet is linked.
func (a Account) HasSocials() bool {
	return len(a.Linked) > 1
}

// OwnsWallet compares the primary wallet case-insensitively.
func (a Account) OwnsWallet(address string) bool {
	return a.Wallet != "" && strings.EqualFold(a.Wallet, address)
}

// ExtraAddresses returns linked addresses other than the primary wallet.
func (a Account) ExtraAddresses() map[string]string {
	out := make(map[string]string)
	for chain, addr := range a.Addresses {
		if !strings.EqualFold(addr, a.Wallet) {
			out[chain] = addr
		}
	}
	return out
}
