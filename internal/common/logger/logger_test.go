package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTagsServiceAndHonoursDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "questbot", false)
	l.Debug().Msg("hidden")
	l.Info().Str("job_id", "j1").Msg("Job queued")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "| Job queued")
	assert.Contains(t, out, "service:questbot")
	assert.Contains(t, out, "job_id:j1")

	buf.Reset()
	dl := New(&buf, "questbot", true)
	dl.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
