// Package importer turns exported statement files into ledger rows.
//
// The dashboards normally read what the platform feed already wrote, but the
// feed has gaps: outages, gateway migrations, rows the webhook dropped. When
// finance spots a hole they download the acquirer's statement export and
// backfill it through here.
package importer

import (
	"fmt"
	"io"

	"github.com/centralcaixa/backoffice/internal/importer/gateway"
	"github.com/centralcaixa/backoffice/internal/transaction"
)

// Source names a statement origin accepted by the import endpoint.
type Source string

const (
	SourceGateway Source = "gateway"
)

type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}

type Service struct {
	gatewayParser Parser
}

func NewService() *Service {
	return &Service{
		gatewayParser: gateway.NewParser(),
	}
}

func (s *Service) Parse(source Source, r io.Reader) ([]transaction.CreateParams, error) {
	var parser Parser

	switch source {
	case SourceGateway:
		parser = s.gatewayParser
	default:
		return nil, fmt.Errorf("unknown statement source: %s", source)
	}

	return parser.Parse(r)
}
