package services

import (
	"context"
	"fmt"

	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PublisherService manages the set of root publishers: identities with
// direct, non-delegated standing to mutate the registry. Mutations are
// owner-only; the owner check happens at the admin surface.
type PublisherService struct {
	queries db.Querier
	logger  *zap.Logger
}

// NewPublisherService creates a new publisher service
func NewPublisherService(queries db.Querier) *PublisherService {
	return &PublisherService{
		queries: queries,
		logger:  logger.Log,
	}
}

// AddRootPublisher grants an identity root publishing standing.
func (s *PublisherService) AddRootPublisher(ctx context.Context, address common.Address) error {
	if err := s.queries.AddRootPublisher(ctx, address.Hex()); err != nil {
		return fmt.Errorf("failed to add root publisher: %w", err)
	}
	s.logger.Info("Added root publisher",
		zap.String("event_id", uuid.New().String()),
		zap.String("address", address.Hex()),
	)
	return nil
}

// RemoveRootPublisher removes an identity's root publishing standing.
func (s *PublisherService) RemoveRootPublisher(ctx context.Context, address common.Address) error {
	if err := s.queries.RemoveRootPublisher(ctx, address.Hex()); err != nil {
		return fmt.Errorf("failed to remove root publisher: %w", err)
	}
	s.logger.Info("Removed root publisher",
		zap.String("event_id", uuid.New().String()),
		zap.String("address", address.Hex()),
	)
	return nil
}

// IsRootPublisher reports whether an identity is an authorized root
// publisher.
func (s *PublisherService) IsRootPublisher(ctx context.Context, address common.Address) (bool, error) {
	ok, err := s.queries.IsRootPublisher(ctx, address.Hex())
	if err != nil {
		return false, fmt.Errorf("failed to check root publisher: %w", err)
	}
	return ok, nil
}

// ListRootPublishers returns every authorized root publisher.
func (s *PublisherService) ListRootPublishers(ctx context.Context) ([]common.Address, error) {
	rows, err := s.queries.ListRootPublishers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list root publishers: %w", err)
	}
	addresses := make([]common.Address, len(rows))
	for i, row := range rows {
		addresses[i] = common.HexToAddress(row)
	}
	return addresses, nil
}
