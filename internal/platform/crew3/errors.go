package crew3

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx platform response. The platform reports errors either
// as a top level message or as per-action fields under "error", depending on
// the submission type.
type APIError struct {
	Status  int
	Message string
	Action  ActionErrors
	Body    string
}

// ActionErrors are the structured fields of the "error" object.
type ActionErrors struct {
	Message string
	Follow  string
	Retweet string
	Reply   string
	Like    string
}

func (e *APIError) Error() string {
	if msg := Describe(e, ""); msg != "" {
		return fmt.Sprintf("platform http %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("platform http %d", e.Status)
}

func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Body: string(body)}
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}
	e.Message = text(payload.Message)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload.Error, &fields); err == nil {
		e.Action = ActionErrors{
			Message: text(fields["message"]),
			Follow:  text(fields["follow"]),
			Retweet: text(fields["retweet"]),
			Reply:   text(fields["reply"]),
			Like:    text(fields["like"]),
		}
	} else if s := text(payload.Error); s != "" {
		e.Action.Message = s
	}
	return e
}

// text flattens a JSON string or array of strings.
func text(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

type messageRule struct {
	match   func(*APIError) bool
	extract func(*APIError) string
}

// present builds a rule matching when the extracted field is non-empty.
func present(get func(*APIError) string) messageRule {
	return messageRule{
		match:   func(e *APIError) bool { return get(e) != "" },
		extract: get,
	}
}

// messageRules is evaluated top to bottom, first match wins.
var messageRules = []messageRule{
	present(func(e *APIError) string { return e.Message }),
	present(func(e *APIError) string { return e.Action.Message }),
	present(func(e *APIError) string { return e.Action.Follow }),
	present(func(e *APIError) string { return e.Action.Retweet }),
	present(func(e *APIError) string { return e.Action.Reply }),
	present(func(e *APIError) string { return e.Action.Like }),
}

// Describe returns the most specific platform message carried by err, or
// fallback when err is not a platform response or carries none.
func Describe(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	for _, r := range messageRules {
		if r.match(apiErr) {
			return r.extract(apiErr)
		}
	}
	return fallback
}

// IsAPIError reports whether err is a platform rejection rather than a transport fault.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
