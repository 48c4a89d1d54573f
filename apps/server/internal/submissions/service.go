// Package submissions holds the intake use case: turn one uploaded report
// into one commit in the archive repository. It depends only on the Archiver
// port — no framework imports.
package submissions

import (
	"context"
	"fmt"
	"time"
)

// Service accepts uploaded reports and hands them to the Archiver exactly once.
type Service struct {
	archive Archiver
	now     func() time.Time
}

// NewService creates a new Service.
func NewService(archive Archiver) *Service {
	return &Service{archive: archive, now: time.Now}
}

// Submit archives one uploaded file and returns where it landed. The
// descriptor is built fresh per call, so concurrent submissions never share
// state; failures from the archive surface to the caller unchanged.
func (s *Service) Submit(ctx context.Context, filename string, content []byte) (*Receipt, error) {
	if len(content) == 0 {
		return nil, EmptySubmissionError{}
	}

	now := s.now()
	d := Descriptor{
		Path:    ArchivePath(now, filename),
		Content: content,
		Message: CommitMessage(now, filename),
	}
	if err := s.archive.Put(ctx, d); err != nil {
		return nil, fmt.Errorf("archive submission: %w", err)
	}
	return &Receipt{Path: d.Path}, nil
}
