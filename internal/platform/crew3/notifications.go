package crew3

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/open-builders/questbot/internal/answers"
	"github.com/open-builders/questbot/internal/domain/quest"
)

type notification struct {
	Title  string `json:"title"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Events []struct {
		Value     string               `json:"value"`
		ValueType quest.SubmissionType `json:"valueType"`
	} `json:"events"`
}

// recorded reports whether the notification is an accepted knowledge answer.
func (n notification) recorded() bool {
	if n.Status != StatusSuccess || n.Type != "claim" || len(n.Events) == 0 {
		return false
	}
	t := n.Events[0].ValueType
	return t == quest.SubmissionQuiz || t == quest.SubmissionText
}

// CommunityAnswers reads the account's accepted quiz and text answers from
// one page of its community notifications.
func (c *Client) CommunityAnswers(ctx context.Context, subdomain string, page, size int) ([]answers.Record, error) {
	var resp struct {
		Notifications []notification `json:"notifications"`
	}
	endpoint := fmt.Sprintf("communities/%s/users/me/notifications?page=%d&page_size=%d", url.PathEscape(subdomain), page, size)
	if err := c.get(ctx, "get notifications", endpoint, "", &resp); err != nil {
		return nil, err
	}

	records := []answers.Record{}
	for _, n := range resp.Notifications {
		if !n.recorded() {
			continue
		}
		records = append(records, answers.Record{
			Question: strings.TrimSpace(n.Title),
			Answer:   n.Events[0].Value,
		})
	}
	return records, nil
}
