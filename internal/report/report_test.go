package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rplatform "github.com/open-builders/questbot/internal/platform/redis"
)

func TestRender(t *testing.T) {
	lines := []Line{
		Header("Start claim *none* quests for 1 communities:"),
		Entry("Claim *Q1*, earn *10* points"),
		Outcome("u1", "alice", "Successfully joined to community!"),
		Outcome("u2", "", "bare"),
		Summary("Operation complete"),
	}
	assert.Equal(t, "Start claim *none* quests for 1 communities:\n"+
		" - Claim *Q1*, earn *10* points\n"+
		"*alice:* Successfully joined to community!\n"+
		"bare\n"+
		"Operation complete", Render(lines))
	assert.Equal(t, 1, Entries(lines))
}

func TestForAccount(t *testing.T) {
	in := []Line{Header("h"), Entry("e")}
	out := ForAccount(in, "u1", "alice")
	assert.Equal(t, "u1", out[1].AccountID)
	assert.Empty(t, in[1].AccountID, "input is not modified")
}

type failing struct{}

func (failing) Report(context.Context, ...Line) error { return errors.New("down") }

func TestFanoutReportsToAll(t *testing.T) {
	a, b := &Collector{}, &Collector{}
	err := Fanout{a, failing{}, nil, b}.Report(context.Background(), Summary("done"))
	require.Error(t, err)
	assert.Len(t, a.Lines(), 1)
	assert.Len(t, b.Lines(), 1)
}

func TestRedisLog(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &rplatform.Client{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Close() })

	log := NewRedisLog(client, time.Hour)
	ctx := context.Background()

	r := log.For("job-1")
	require.NoError(t, r.Report(ctx, Header("h"), Entry("e1")))
	require.NoError(t, r.Report(ctx))
	require.NoError(t, r.Report(ctx, Summary("done")))

	lines, err := log.Lines(ctx, "job-1")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, KindEntry, lines[1].Kind)
	assert.Equal(t, "done", lines[2].Text)
	assert.Equal(t, time.Hour, mr.TTL(reportKey("job-1")))

	empty, err := log.Lines(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
