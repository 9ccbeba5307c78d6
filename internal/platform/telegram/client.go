// Package telegram is a minimal Bot API client used to deliver batch reports
// to the operator chat.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/report"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	// MaxMessageLength is the Bot API limit for one text message.
	MaxMessageLength = 4096
	tooLongNotice    = "Report too long..."
)

// Client provides the Bot API calls the service needs.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
	logger     zerolog.Logger
}

func NewClient(token, baseURL string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// RPSError is returned when the Bot API rate limits the bot.
type RPSError struct {
	Msg        string
	RetryAfter time.Duration
}

func (e *RPSError) Error() string {
	return e.Msg
}

type tgResponse[T any] struct {
	Ok          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Result      T      `json:"result"`
	Parameters  struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters"`
}

type message struct {
	MessageID int64 `json:"message_id"`
}

// SendMessage posts text to chatID. With markdown set the text is sent in
// Markdown mode and retried as plain text when Telegram cannot parse it.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markdown bool) error {
	params := url.Values{
		"chat_id":                  {strconv.FormatInt(chatID, 10)},
		"text":                     {text},
		"disable_web_page_preview": {"true"},
	}
	if markdown {
		params.Set("parse_mode", "Markdown")
	}

	var resp tgResponse[message]
	if err := c.makeRequest(ctx, "sendMessage", params, &resp); err != nil {
		return apperrors.NewTelegramAPIError("send message", err)
	}
	if resp.Ok {
		return nil
	}
	if resp.ErrorCode == http.StatusTooManyRequests {
		return &RPSError{Msg: resp.Description, RetryAfter: time.Duration(resp.Parameters.RetryAfter) * time.Second}
	}
	if markdown && strings.Contains(resp.Description, "can't parse entities") {
		c.logger.Debug().Str("description", resp.Description).Msg("Markdown rejected, sending plain text")
		return c.SendMessage(ctx, chatID, text, false)
	}
	return apperrors.NewTelegramAPIError("send message", fmt.Errorf("telegram API error: %s", resp.Description))
}

func (c *Client) makeRequest(ctx context.Context, method string, data url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// Reporter sends every report block to one chat as a single message.
type Reporter struct {
	client *Client
	chatID int64
}

func NewReporter(client *Client, chatID int64) *Reporter {
	return &Reporter{client: client, chatID: chatID}
}

func (r *Reporter) Report(ctx context.Context, lines ...report.Line) error {
	if len(lines) == 0 {
		return nil
	}
	text := report.Render(lines)
	if len(text) > MaxMessageLength {
		text = tooLongNotice
	}
	err := r.client.SendMessage(ctx, r.chatID, text, true)
	var rps *RPSError
	if !errors.As(err, &rps) {
		return err
	}
	// one resend after the wait Telegram asks for
	r.client.logger.Warn().Dur("retry_after", rps.RetryAfter).Msg("Report rate limited, retrying")
	timer := time.NewTimer(rps.RetryAfter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return r.client.SendMessage(ctx, r.chatID, text, true)
}
