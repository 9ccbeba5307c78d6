// Package answers keeps the community → question → answer mapping used to
// claim knowledge quests.
package answers

import (
	"context"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Record is one recorded answer. Question is the trimmed quest name.
type Record struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Bank maps a sanitized community name to its questions and answers.
type Bank map[string]map[string]string

// Store is the external answer store.
type Store interface {
	// Read returns the whole bank.
	Read(ctx context.Context) (Bank, error)
	// Write merges records into the community bucket and returns the store location.
	// Empty records leave the store untouched.
	Write(ctx context.Context, community string, records []Record) (string, error)
}

// Lookup finds the answer for a quest of the named community.
func (b Bank) Lookup(communityName, questName string) (string, bool) {
	bucket, ok := b[CommunityKey(communityName)]
	if !ok {
		return "", false
	}
	answer, ok := bucket[strings.TrimSpace(questName)]
	if !ok || answer == "" {
		return "", false
	}
	return answer, true
}

// Communities returns the bucket names.
func (b Bank) Communities() []string {
	out := make([]string, 0, len(b))
	for name := range b {
		out = append(out, name)
	}
	return SortStrings(out)
}

// CommunityKey sanitizes a community display name into a bucket key: only
// ASCII letters, digits and spaces survive.
func CommunityKey(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r == ' ' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Merge combines stored and incoming records. Questions are trimmed, identical
// pairs collapse, a later answer for the same question replaces an earlier one
// and the result is ordered by question using locale-aware collation.
func Merge(existing, incoming []Record) []Record {
	byQuestion := make(map[string]string, len(existing)+len(incoming))
	for _, set := range [][]Record{existing, incoming} {
		for _, r := range set {
			q := strings.TrimSpace(r.Question)
			if q == "" {
				continue
			}
			byQuestion[q] = r.Answer
		}
	}

	questions := make([]string, 0, len(byQuestion))
	for q := range byQuestion {
		questions = append(questions, q)
	}
	questions = SortStrings(questions)

	out := make([]Record, len(questions))
	for i, q := range questions {
		out[i] = Record{Question: q, Answer: byQuestion[q]}
	}
	return out
}

// SortStrings orders s in place with English collation and returns it.
func SortStrings(s []string) []string {
	c := collate.New(language.English)
	c.SortStrings(s)
	return s
}

// ToMap indexes records by question.
func ToMap(records []Record) map[string]string {
	out := make(map[string]string, len(records))
	for _, r := range records {
		out[r.Question] = r.Answer
	}
	return out
}
