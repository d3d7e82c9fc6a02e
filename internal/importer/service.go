package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/stefifm/dashboard/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=importer
type CustomerStore interface {
	CreateCustomer(ctx context.Context, c *invoice.Customer) error
}

// Report summarizes an import.
type Report struct {
	Created  []*invoice.Customer
	Rejected []RowError
}

type Service struct {
	store  CustomerStore
	parser *Parser
}

func NewService(store CustomerStore) *Service {
	return &Service{
		store:  store,
		parser: NewParser(),
	}
}

// Import creates every valid customer in r. Invalid rows are reported, not fatal; a store
// failure stops the import and returns the customers created so far.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Report, error) {
	rows, rejected, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	report := &Report{Rejected: rejected}

	for _, row := range rows {
		c := row.Customer
		if err := s.store.CreateCustomer(ctx, &c); err != nil {
			return report, fmt.Errorf("line %d: %w", row.Line, err)
		}

		report.Created = append(report.Created, &c)
	}

	slog.InfoContext(ctx, "imported customers", "created", len(report.Created), "rejected", len(rejected))

	return report, nil
}
