package submissions_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewsafe/intake/apps/server/internal/submissions"
)

// ─── Stubs ───────────────────────────────────────────────────────────────────

type stubArchiver struct {
	puts []submissions.Descriptor
	err  error
}

func (a *stubArchiver) Put(_ context.Context, d submissions.Descriptor) error {
	a.puts = append(a.puts, d)
	return a.err
}

// ─── Submit ──────────────────────────────────────────────────────────────────

func TestSubmit_ArchivesContentVerbatim(t *testing.T) {
	archive := &stubArchiver{}
	svc := submissions.NewService(archive)

	content := []byte("a,b,c\n1,2,3\n")
	receipt, err := svc.Submit(t.Context(), "report.csv", content)
	require.NoError(t, err)

	require.Len(t, archive.puts, 1)
	put := archive.puts[0]
	assert.Equal(t, content, put.Content)
	assert.Equal(t, put.Path, receipt.Path)
	assert.Regexp(t, pathPattern, put.Path)
	assert.Contains(t, put.Message, "report.csv")
}

func TestSubmit_EmptyContent_NoArchiveCall(t *testing.T) {
	archive := &stubArchiver{}
	svc := submissions.NewService(archive)

	_, err := svc.Submit(t.Context(), "report.csv", nil)

	var empty submissions.EmptySubmissionError
	assert.ErrorAs(t, err, &empty)
	assert.Empty(t, archive.puts)
}

func TestSubmit_RemoteRejection_SurfacesDetail(t *testing.T) {
	archive := &stubArchiver{err: submissions.RemoteRejectedError{StatusCode: 401, Message: "Bad credentials"}}
	svc := submissions.NewService(archive)

	_, err := svc.Submit(t.Context(), "report.csv", []byte("a,b\n"))
	require.Error(t, err)

	var rejected submissions.RemoteRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 401, rejected.StatusCode)
	assert.Equal(t, "Bad credentials", rejected.Message)
}

func TestSubmit_SuccessiveUploads_GetDistinctPaths(t *testing.T) {
	archive := &stubArchiver{}
	svc := submissions.NewService(archive)

	for range 3 {
		_, err := svc.Submit(t.Context(), "report.csv", []byte("a,b\n"))
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, put := range archive.puts {
		assert.False(t, seen[put.Path])
		seen[put.Path] = true
	}
}
