package quest

import (
	"sort"
	"strings"
)

const VisibilityPrivate = "private"

// Community is an immutable snapshot of a quest space as listed by the platform.
type Community struct {
	Subdomain      string          `json:"subdomain"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Blockchain     string          `json:"blockchain,omitempty"`
	Sector         string          `json:"sector,omitempty"`
	Visibility     string          `json:"visibility,omitempty"`
	Rank           int             `json:"rank"`
	Quests         int             `json:"quests"`
	RequiredFields map[string]bool `json:"requiredFields,omitempty"`
	Discord        string          `json:"discord,omitempty"`
	Twitter        string          `json:"twitter,omitempty"`
	Opensea        string          `json:"opensea,omitempty"`
}

func (c Community) IsPrivate() bool {
	return c.Visibility == VisibilityPrivate
}

// Required lists the profile fields a member must fill, sorted, with the
// platform's fill/link affixes stripped.
func (c Community) Required() []string {
	var out []string
	for key, on := range c.RequiredFields {
		if !on {
			continue
		}
		name := strings.Replace(key, "fill", "", 1)
		name = strings.Replace(name, "link", "", 1)
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MemberStats is an account's standing inside one community.
type MemberStats struct {
	Invites int `json:"invites"`
	Level   int `json:"level"`
	Rank    int `json:"rank"`
	XP      int `json:"xp"`
}
