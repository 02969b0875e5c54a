// Package spannerstore is the Cloud Spanner backend. Reads run as single-use
// queries; writes are translated into one mutation plan per change set.
package spannerstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/stock-alert-service/internal/pkg/committer"
)

// Store implements contracts.Store on top of a Spanner database.
type Store struct {
	client    *spanner.Client
	committer *committer.Adapter
}

func New(client *spanner.Client) *Store {
	return &Store{client: client, committer: committer.NewAdapter(client)}
}

// Open connects to database, e.g. projects/p/instances/i/databases/d.
// SPANNER_EMULATOR_HOST is honoured by the client library.
func Open(ctx context.Context, database string) (*Store, error) {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("spannerstore: new client: %w", err)
	}
	return New(client), nil
}

func (s *Store) Close() error {
	s.client.Close()
	return nil
}
