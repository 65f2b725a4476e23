package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
)

// ErrInvalidFile is returned when an upload cannot be read as a customer CSV.
var ErrInvalidFile = errors.New("invalid customer file")

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer

// Importer turns an uploaded file into customer drafts for an organization.
type Importer interface {
	Parse(r io.Reader, organizationID uuid.UUID) ([]customer.CreateParams, error)
}

// Batcher persists parsed customers; *workspace.Workspace satisfies it.
type Batcher interface {
	ImportCustomers(ctx context.Context, organizationID uuid.UUID, params []customer.CreateParams) (*customer.ImportResult, error)
}

type Service struct {
	parser  Importer
	batcher Batcher
}

func NewService(batcher Batcher) *Service {
	return &Service{
		parser:  NewParser(),
		batcher: batcher,
	}
}

// ImportCustomers parses r and stores the rows that are neither invalid nor already known.
func (s *Service) ImportCustomers(ctx context.Context, organizationID uuid.UUID, r io.Reader) (*customer.ImportResult, error) {
	params, err := s.parser.Parse(r, organizationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	result, err := s.batcher.ImportCustomers(ctx, organizationID, params)
	if err != nil {
		return nil, fmt.Errorf("importing customers: %w", err)
	}

	slog.Info("customer import finished",
		"organization_id", organizationID,
		"rows", len(params),
		"imported", len(result.Imported),
		"conflicts", len(result.Conflicts),
		"skipped", result.Skipped,
	)

	return result, nil
}
