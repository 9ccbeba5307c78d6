package quest

import (
	"fmt"
	"strings"
)

// FormatCommunity renders the Markdown card shown to operators. siteURL is
// the community's site. stats may be nil.
func FormatCommunity(c Community, siteURL string, stats *MemberStats) string {
	var sb strings.Builder
	sb.WriteString("*" + c.Name + "*")
	if c.Description != "" {
		sb.WriteString("\n\n" + c.Description)
	}
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "*Crew3:* [%s](%s)\n", siteURL, siteURL)
	fmt.Fprintf(&sb, "*Discord:* [%s](%s)\n", c.Discord, orNone(c.Discord))
	fmt.Fprintf(&sb, "*Twitter:* [https://twitter.com/%s](https://twitter.com/%s)\n", c.Twitter, c.Twitter)
	fmt.Fprintf(&sb, "*Opensea:* [%s](%s)\n\n", c.Opensea, orNone(c.Opensea))

	fmt.Fprintf(&sb, "Blockchain: *%s*\n", strings.ToUpper(c.Blockchain))
	if c.Sector != "" {
		fmt.Fprintf(&sb, "Sector: *%s*\n", strings.ToUpper(c.Sector))
	}
	fmt.Fprintf(&sb, "\nCommunity rank: *%d*\nQuests: *%d*\nRequired: *%s*", c.Rank, c.Quests, strings.Join(c.Required(), ", "))

	if stats != nil {
		fmt.Fprintf(&sb, "\n\nInvites: *%d* | Level: *%d*\nLeaderboard rank: *%d*\nClaimed XP: *%d*",
			stats.Invites, stats.Level, stats.Rank, stats.XP)
	}
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "NONE"
	}
	return s
}
