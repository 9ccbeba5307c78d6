package crew3

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/quest"
)

// StatusSuccess is the claim status of an accepted submission.
const StatusSuccess = "success"

// Submission is the claim form for one quest. Value is omitted when empty.
type Submission struct {
	QuestID string
	Type    quest.SubmissionType
	Value   string
}

// ClaimResponse is the platform verdict on a submission.
type ClaimResponse struct {
	Status string `json:"status"`
	XP     int    `json:"xp"`
}

func (r ClaimResponse) Accepted() bool {
	return r.Status == StatusSuccess
}

// SubmitClaim posts the multipart claim form with headers scoped to subdomain.
func (c *Client) SubmitClaim(ctx context.Context, subdomain string, s Submission) (*ClaimResponse, error) {
	fields := [][2]string{}
	if s.Value != "" {
		fields = append(fields, [2]string{"value", s.Value})
	}
	fields = append(fields, [2]string{"questId", s.QuestID}, [2]string{"type", string(s.Type)})
	if c.opts.ClaimToken != "" {
		fields = append(fields, [2]string{"token", c.opts.ClaimToken})
	}

	body, contentType, err := multipartForm(fields)
	if err != nil {
		return nil, apperrors.NewTransportError("claim quest", err)
	}

	var resp ClaimResponse
	err = c.do(ctx, "claim quest", request{
		method:      http.MethodPost,
		endpoint:    "communities/" + url.PathEscape(subdomain) + "/quests/" + url.PathEscape(s.QuestID) + "/claim",
		subdomain:   subdomain,
		body:        body,
		contentType: contentType,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func multipartForm(fields [][2]string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
