package quest

import (
	"net/url"
	"strings"

	"github.com/open-builders/questbot/internal/utils/random"
)

var replyPhrases = []string{
	"great milestone team ❤️🌎", "👍👍👍👍", "👏", "We need more of this kind of good news 🚀",
	"Nice", "Good", "go moon", "Great news 😊", "Great project", "awesome", "Nice project",
	"Good news!", "Very good", "👌", "🚀🚀🚀", "amazing", "Cool!",
}

// SocialTask is one manual action with the intent link that performs it.
type SocialTask struct {
	Task string `json:"task"`
	Link string `json:"link"`
}

// TwitterTasks builds intent links for the actions a twitter quest asks for.
func TwitterTasks(q Quest) []SocialTask {
	v := q.ValidationData
	has := make(map[string]bool, len(v.Actions))
	for _, a := range v.Actions {
		has[a] = true
	}

	var tasks []SocialTask
	if has["follow"] {
		tasks = append(tasks, SocialTask{"follow", "https://twitter.com/intent/user?screen_name=" + url.QueryEscape(v.TwitterHandle)})
	}
	if has["like"] {
		tasks = append(tasks, SocialTask{"like", "https://twitter.com/intent/like?tweet_id=" + url.QueryEscape(v.TweetID)})
	}
	if has["retweet"] {
		tasks = append(tasks, SocialTask{"retweet", "https://twitter.com/intent/retweet?tweet_id=" + url.QueryEscape(v.TweetID)})
	}
	if has["reply"] {
		text := v.DefaultReply
		if text == "" {
			text = replyPhrases[random.Int(len(replyPhrases))]
		}
		tasks = append(tasks, SocialTask{"reply", "https://twitter.com/intent/tweet?in_reply_to=" + url.QueryEscape(v.TweetID) + "&text=" + url.QueryEscape(text)})
	}
	if has["tweet"] {
		text := strings.TrimSpace(v.DefaultTweet + " " + strings.Join(v.TweetWords, " "))
		tasks = append(tasks, SocialTask{"tweet", "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text)})
	}
	return tasks
}

// DiscordInvites collects distinct invite links of discord quests, first-seen order.
func DiscordInvites(quests []Quest) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range Filter(quests, OfType(SubmissionDiscord)) {
		link := q.ValidationData.InviteLink
		if link == "" {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		out = append(out, link)
	}
	return out
}
