package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/locale"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=dashboard
type Source interface {
	Snapshot(ctx context.Context, organizationID uuid.UUID) (*workspace.Snapshot, error)
}

type Service struct {
	source Source
	labels *locale.Labels
	now    func() time.Time
}

func NewService(source Source, labels *locale.Labels) *Service {
	return &Service{source: source, labels: labels, now: time.Now}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

func (s *Service) Summary(ctx context.Context, organizationID uuid.UUID) (Summary, error) {
	snap, err := s.source.Snapshot(ctx, organizationID)
	if err != nil {
		return Summary{}, err
	}

	return Build(snap, s.now().UTC(), s.labels), nil
}
