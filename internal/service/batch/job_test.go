package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/domain/quest"
	"github.com/open-builders/questbot/internal/report"
)

func TestParseInvite(t *testing.T) {
	sub, code, limit, err := ParseInvite("https://acme.crew3.xyz/invite/AbC-123 5")
	require.NoError(t, err)
	assert.Equal(t, "acme", sub)
	assert.Equal(t, "AbC-123", code)
	assert.Equal(t, 5, limit)

	sub, code, limit, err = ParseInvite("  https://moon.crew3.xyz/invite/xyz ")
	require.NoError(t, err)
	assert.Equal(t, "moon", sub)
	assert.Equal(t, "xyz", code)
	assert.Zero(t, limit)

	_, _, _, err = ParseInvite("https://crew3.xyz/communities")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestJobValidate(t *testing.T) {
	ids := []string{"a"}
	cases := []struct {
		name string
		job  Job
		ok   bool
	}{
		{"claim", Job{Kind: KindClaim, AccountIDs: ids, Group: "daily"}, true},
		{"claim bad group", Job{Kind: KindClaim, AccountIDs: ids, Group: "all"}, false},
		{"join", Job{Kind: KindJoin, AccountIDs: ids, Subdomain: "acme", Invite: "x"}, true},
		{"join without code", Job{Kind: KindJoin, AccountIDs: ids, Subdomain: "acme"}, false},
		{"leave", Job{Kind: KindLeave, AccountIDs: ids, Community: "acme"}, true},
		{"leave blank", Job{Kind: KindLeave, AccountIDs: ids, Community: " "}, false},
		{"answers", Job{Kind: KindAnswers, AccountIDs: ids}, true},
		{"enroll", Job{Kind: KindEnroll, AccountIDs: ids, Category: "new"}, true},
		{"no accounts", Job{Kind: KindAnswers}, false},
		{"unknown", Job{Kind: "dance", AccountIDs: ids}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.job.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
			}
		})
	}
}

func TestNewJobHasID(t *testing.T) {
	a, b := NewJob(KindClaim, []string{"x"}), NewJob(KindClaim, []string{"x"})
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestRunDispatches(t *testing.T) {
	f := newFixture("a").inOrder()
	out := &report.Collector{}

	job := NewJob(KindLeave, []string{"a"})
	job.Community = "acme"
	require.NoError(t, f.orch.Run(context.Background(), job, out))
	assert.Equal(t, "Operation complete", out.Lines()[len(out.Lines())-1].Text)

	err := f.orch.Run(context.Background(), Job{Kind: KindClaim, AccountIDs: []string{"a"}}, out)
	assert.Error(t, err)
}

func TestRunEnroll(t *testing.T) {
	f := newFixture("a", "b")
	f.anon.listing = []quest.Community{{Subdomain: "pub", Name: "Pub"}}
	out := &report.Collector{}

	job := NewJob(KindEnroll, []string{"a", "b"})
	job.Category = "new"
	require.NoError(t, f.orch.Run(context.Background(), job, out))

	assert.Equal(t, []string{"pub"}, f.profiles["a"].joins)
	assert.Equal(t, []string{"pub"}, f.profiles["b"].joins)
	assert.Len(t, ofKind(out.Lines(), report.KindHeader), 2)
}
