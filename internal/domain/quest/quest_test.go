package quest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Quest {
	return []Quest{
		{ID: "1", Name: "daily", SubmissionType: SubmissionNone, Unlocked: true, Open: true},
		{ID: "2", Name: "quiz", SubmissionType: SubmissionQuiz, Unlocked: true, Open: true, AutoValidate: true},
		{ID: "3", Name: "locked", SubmissionType: SubmissionNone, Unlocked: false, Open: true},
		{ID: "4", Name: "review", SubmissionType: SubmissionText, Unlocked: true, Open: true, InReview: true},
		{ID: "5", Name: "closed", SubmissionType: SubmissionTwitter, Unlocked: true, Open: false},
		{ID: "6", Name: "role", SubmissionType: SubmissionDiscord, Unlocked: true, Open: true,
			Rewards: []Reward{{Type: "xp"}, {Type: RewardRole}}},
	}
}

func ids(qs []Quest) []string {
	var out []string
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestUnlockedFilter(t *testing.T) {
	got := Filter(sample(), Unlocked)
	assert.Equal(t, []string{"1", "2", "6"}, ids(got))
}

func TestUnlockedFilterIsIdempotent(t *testing.T) {
	once := Filter(sample(), Unlocked)
	twice := Filter(once, Unlocked)
	assert.Equal(t, once, twice)
}

func TestComposedFilters(t *testing.T) {
	got := Filter(sample(), Unlocked, OfType(SubmissionQuiz, SubmissionText))
	assert.Equal(t, []string{"2"}, ids(got))

	assert.Equal(t, []string{"6"}, ids(Filter(sample(), GrantsRole)))
	assert.Equal(t, []string{"2"}, ids(Filter(sample(), AutoValidates)))
	assert.Len(t, Filter(sample()), len(sample()))
}

func TestGrantsRoleOnlyFirstTwoSlots(t *testing.T) {
	q := Quest{Rewards: []Reward{{Type: "xp"}, {Type: "xp"}, {Type: RewardRole}}}
	assert.False(t, GrantsRole(q))
}

func TestFlattenDropsDeletedAndKeepsOrder(t *testing.T) {
	board := []Theme{
		{Name: "a", Quests: []Quest{{ID: "a1"}, {ID: "a2", Deleted: true}, {ID: "a3"}}},
		{Name: "gone", Deleted: true, Quests: []Quest{{ID: "g1"}}},
		{Name: "b", Quests: []Quest{{ID: "b1"}}},
	}
	assert.Equal(t, []string{"a1", "a3", "b1"}, ids(Flatten(board)))
}

func TestRequiresAnswer(t *testing.T) {
	for _, st := range []SubmissionType{SubmissionQuiz, SubmissionText, SubmissionURL, SubmissionImage} {
		assert.True(t, st.RequiresAnswer(), st)
	}
	for _, st := range []SubmissionType{SubmissionNone, SubmissionTelegram, SubmissionTwitter, SubmissionDiscord, SubmissionInvites} {
		assert.False(t, st.RequiresAnswer(), st)
	}
}

func TestParseAndJoinTypes(t *testing.T) {
	types := ParseTypes(" none, telegram ,,quiz")
	assert.Equal(t, []SubmissionType{SubmissionNone, SubmissionTelegram, SubmissionQuiz}, types)
	assert.Equal(t, "none, telegram, quiz", JoinTypes(types, ", "))
}

func TestValidationDataKeepsRaw(t *testing.T) {
	var q Quest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"q","submissionType":"quiz","validationData":{"question":"2+2?","options":["3","4"]}}`), &q))

	assert.Equal(t, "2+2?", q.ValidationData.Describe())
	assert.Contains(t, string(q.ValidationData.Raw), "options")

	var noQuestion Quest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"q","validationData":{"limit":3}}`), &noQuestion))
	assert.Equal(t, `{"limit":3}`, noQuestion.ValidationData.Describe())

	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"options":["3","4"]`)
}

func TestTwitterTasks(t *testing.T) {
	q := Quest{SubmissionType: SubmissionTwitter, ValidationData: ValidationData{
		Actions:       []string{"follow", "like", "reply"},
		TwitterHandle: "acme",
		TweetID:       "42",
	}}

	tasks := TwitterTasks(q)
	require.Len(t, tasks, 3)
	assert.Equal(t, "https://twitter.com/intent/user?screen_name=acme", tasks[0].Link)
	assert.Equal(t, "https://twitter.com/intent/like?tweet_id=42", tasks[1].Link)
	assert.True(t, strings.HasPrefix(tasks[2].Link, "https://twitter.com/intent/tweet?in_reply_to=42&text="))
}

func TestDiscordInvitesDistinct(t *testing.T) {
	qs := []Quest{
		{SubmissionType: SubmissionDiscord, ValidationData: ValidationData{InviteLink: "https://discord.gg/a"}},
		{SubmissionType: SubmissionDiscord, ValidationData: ValidationData{InviteLink: "https://discord.gg/a"}},
		{SubmissionType: SubmissionTwitter, ValidationData: ValidationData{InviteLink: "https://discord.gg/x"}},
		{SubmissionType: SubmissionDiscord, ValidationData: ValidationData{InviteLink: "https://discord.gg/b"}},
	}
	assert.Equal(t, []string{"https://discord.gg/a", "https://discord.gg/b"}, DiscordInvites(qs))
}

func TestCommunityRequired(t *testing.T) {
	c := Community{RequiredFields: map[string]bool{"fillEmail": true, "linkTwitter": true, "linkDiscord": false}}
	assert.Equal(t, []string{"Email", "Twitter"}, c.Required())
	assert.False(t, c.IsPrivate())
	assert.True(t, Community{Visibility: "private"}.IsPrivate())
}

func TestFormatCommunity(t *testing.T) {
	c := Community{
		Name: "Acme", Subdomain: "acme", Blockchain: "eth", Rank: 3, Quests: 12,
		Twitter: "acme", RequiredFields: map[string]bool{"fillEmail": true},
	}
	card := FormatCommunity(c, "https://acme.crew3.xyz", nil)
	assert.True(t, strings.HasPrefix(card, "*Acme*\n\n*Crew3:* [https://acme.crew3.xyz]"))
	assert.Contains(t, card, "*Discord:* [](NONE)")
	assert.Contains(t, card, "Blockchain: *ETH*")
	assert.NotContains(t, card, "Sector:")
	assert.Contains(t, card, "Required: *Email*")
	assert.NotContains(t, card, "Claimed XP")

	card = FormatCommunity(c, "https://acme.crew3.xyz", &MemberStats{Invites: 1, Level: 2, Rank: 40, XP: 150})
	assert.True(t, strings.HasSuffix(card, "Leaderboard rank: *40*\nClaimed XP: *150*"))
}
