// Package listings fetches the listing catalogue and maps it for display.
package listings

import (
	"context"
	"fmt"

	"github.com/donaldgifford/bokdeok/internal/gateway"
	"github.com/donaldgifford/bokdeok/pkg/estate"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

const estatePath = "/estate"

// API is the subset of the gateway the service uses.
type API interface {
	Get(ctx context.Context, path string) (*gateway.Envelope, error)
}

// Service lists estates.
type Service struct {
	api API
}

// New creates a Service.
func New(api API) *Service {
	return &Service{api: api}
}

// List returns every listing as an Estate.
func (s *Service) List(ctx context.Context) ([]domain.Estate, error) {
	env, err := s.api.Get(ctx, estatePath)
	if err != nil {
		return nil, fmt.Errorf("listing estates: %w", err)
	}

	var houses []domain.HouseDTO
	if err := env.Decode(&houses); err != nil {
		return nil, fmt.Errorf("listing estates: %w", err)
	}
	return estate.MapHouses(houses), nil
}

// Find returns the listing with id.
func (s *Service) Find(ctx context.Context, id domain.ListingID) (domain.Estate, bool, error) {
	all, err := s.List(ctx)
	if err != nil {
		return domain.Estate{}, false, err
	}
	for i := range all {
		if all[i].ID == id {
			return all[i], true, nil
		}
	}
	return domain.Estate{}, false, nil
}
