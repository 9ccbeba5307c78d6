package quest

import (
	"encoding/json"
	"strings"
)

// SubmissionType is how a quest completion is proven.
type SubmissionType string

const (
	SubmissionNone     SubmissionType = "none"
	SubmissionTelegram SubmissionType = "telegram"
	SubmissionQuiz     SubmissionType = "quiz"
	SubmissionText     SubmissionType = "text"
	SubmissionURL      SubmissionType = "url"
	SubmissionImage    SubmissionType = "image"
	SubmissionTwitter  SubmissionType = "twitter"
	SubmissionDiscord  SubmissionType = "discord"
	SubmissionInvites  SubmissionType = "invites"
)

// RequiresAnswer reports whether a claim must carry a recorded answer value.
func (t SubmissionType) RequiresAnswer() bool {
	switch t {
	case SubmissionQuiz, SubmissionText, SubmissionURL, SubmissionImage:
		return true
	}
	return false
}

// ParseTypes splits a comma separated list ("none,telegram").
func ParseTypes(s string) []SubmissionType {
	var out []SubmissionType
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, SubmissionType(part))
		}
	}
	return out
}

// JoinTypes renders types the way reports print them.
func JoinTypes(types []SubmissionType, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, sep)
}

const RewardRole = "role"

type Reward struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Quest is a completable task within a community.
type Quest struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	SubmissionType SubmissionType `json:"submissionType"`
	Rewards        []Reward       `json:"reward,omitempty"`
	Unlocked       bool           `json:"unlocked"`
	InReview       bool           `json:"inReview"`
	Open           bool           `json:"open"`
	AutoValidate   bool           `json:"autoValidate"`
	Deleted        bool           `json:"deleted,omitempty"`
	ValidationData ValidationData `json:"validationData"`
}

// Eligible is the claim precondition: unlocked, open and not waiting for review.
func (q Quest) Eligible() bool {
	return q.Unlocked && q.Open && !q.InReview
}

// TrimmedName is the key the answer bank uses for this quest.
func (q Quest) TrimmedName() string {
	return strings.TrimSpace(q.Name)
}

// Theme is a named group of quests on a community quest board.
type Theme struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Deleted bool    `json:"deleted,omitempty"`
	Quests  []Quest `json:"quests"`
}

// ValidationData carries type specific quest parameters. Raw keeps the
// original payload for quests whose shape is not modelled here.
type ValidationData struct {
	Question      string   `json:"question,omitempty"`
	Actions       []string `json:"actions,omitempty"`
	TwitterHandle string   `json:"twitterHandle,omitempty"`
	TweetID       string   `json:"tweetId,omitempty"`
	DefaultReply  string   `json:"defaultReply,omitempty"`
	DefaultTweet  string   `json:"defaultTweet,omitempty"`
	TweetWords    []string `json:"tweetWords,omitempty"`
	InviteLink    string   `json:"inviteLink,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (v *ValidationData) UnmarshalJSON(b []byte) error {
	type plain ValidationData
	var p plain
	if string(b) != "null" {
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
	}
	*v = ValidationData(p)
	v.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (v ValidationData) MarshalJSON() ([]byte, error) {
	if len(v.Raw) > 0 {
		return v.Raw, nil
	}
	type plain ValidationData
	return json.Marshal(plain(v))
}

// Describe returns the question text, or the raw payload when there is none.
func (v ValidationData) Describe() string {
	if v.Question != "" {
		return v.Question
	}
	if len(v.Raw) > 0 && string(v.Raw) != "null" {
		return string(v.Raw)
	}
	return ""
}
