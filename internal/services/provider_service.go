package services

import (
	"context"
	"math"
	"strings"

	"pieceJobBack/internal/geo"
	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
)

// Logger is a minimal logger interface required by services.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LiveLocator indexes the positions of online providers.
type LiveLocator interface {
	Update(ctx context.Context, providerID string, c models.Coordinates) error
	GoOffline(ctx context.Context, providerID string) error
	Nearby(ctx context.Context, origin models.Coordinates, radiusKm float64, limit int) ([]geo.NearbyProvider, error)
}

type ProviderService struct {
	Registry        *repositories.Registry
	Locator         LiveLocator
	Logger          Logger
	DefaultRadiusKm float64
}

// ListProviders mirrors ListJobs for provider profiles.
func (s *ProviderService) ListProviders(ctx context.Context, origin *models.Coordinates, radiusKm float64) ([]models.Provider, error) {
	providers := s.Registry.ListProviders()
	if origin == nil {
		return providers, nil
	}
	if !origin.Valid() {
		return nil, models.Invalid("location", "out of range")
	}
	if math.IsNaN(radiusKm) {
		return nil, models.Invalid("radius", "must be a number")
	}
	if radiusKm <= 0 {
		radiusKm = s.DefaultRadiusKm
	}
	ranked := geo.Rank(providers, *origin, radiusKm, func(p models.Provider) *models.Coordinates { return p.Coordinates })
	out := make([]models.Provider, 0, len(ranked))
	for _, r := range ranked {
		p := r.Item
		p.Distance = r.Label()
		out = append(out, p)
	}
	return out, nil
}

func (s *ProviderService) GetProvider(ctx context.Context, id string) (models.Provider, error) {
	return s.Registry.GetProvider(id)
}

func (s *ProviderService) UpsertProvider(ctx context.Context, p models.Provider) (models.Provider, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.ID == "":
		return models.Provider{}, models.Invalid("id", "is required")
	case p.Name == "":
		return models.Provider{}, models.Invalid("name", "is required")
	case p.Rating < 0 || p.Rating > 5:
		return models.Provider{}, models.Invalid("rating", "must be between 0 and 5")
	case p.Coordinates != nil && !p.Coordinates.Valid():
		return models.Provider{}, models.Invalid("coordinates", "out of range")
	}
	return s.Registry.UpsertProvider(p), nil
}

// UpdateLocation stores the provider's live position. actorID, when set,
// must be the provider itself. Failures of the live index are logged and do
// not fail the update.
func (s *ProviderService) UpdateLocation(ctx context.Context, id, actorID string, update models.ProviderLocationUpdate) (models.Provider, error) {
	if actorID != "" && actorID != id {
		return models.Provider{}, models.ErrForbidden
	}
	if !update.Coordinates.Valid() {
		return models.Provider{}, models.Invalid("coordinates", "out of range")
	}
	p, err := s.Registry.UpdateProviderLocation(id, update)
	if err != nil {
		return models.Provider{}, err
	}
	if s.Locator != nil {
		var lerr error
		if update.IsOnline {
			lerr = s.Locator.Update(ctx, id, update.Coordinates)
		} else {
			lerr = s.Locator.GoOffline(ctx, id)
		}
		if lerr != nil && s.Logger != nil {
			s.Logger.Errorf("provider %s: live location update failed: %v", id, lerr)
		}
	}
	return p, nil
}

// NearbyOnline returns online providers near origin, nearest first. It uses
// the live index when configured and falls back to registry positions.
func (s *ProviderService) NearbyOnline(ctx context.Context, origin models.Coordinates, radiusKm float64, limit int) ([]models.Provider, error) {
	if !origin.Valid() {
		return nil, models.Invalid("location", "out of range")
	}
	if math.IsNaN(radiusKm) {
		return nil, models.Invalid("radius", "must be a number")
	}
	if radiusKm <= 0 {
		radiusKm = s.DefaultRadiusKm
	}
	if limit <= 0 {
		limit = 20
	}

	if s.Locator != nil {
		found, err := s.Locator.Nearby(ctx, origin, radiusKm, limit)
		if err == nil {
			out := make([]models.Provider, 0, len(found))
			for _, n := range found {
				p, err := s.Registry.GetProvider(n.ID)
				if err != nil {
					continue
				}
				c := n.Coordinates
				p.Coordinates = &c
				p.Distance = geo.FormatDistance(n.DistanceKm)
				out = append(out, p)
			}
			return out, nil
		}
		if s.Logger != nil {
			s.Logger.Errorf("nearby providers: live index unavailable, using registry: %v", err)
		}
	}

	var online []models.Provider
	for _, p := range s.Registry.ListProviders() {
		if p.IsOnline && p.Coordinates != nil {
			online = append(online, p)
		}
	}
	ranked := geo.Rank(online, origin, radiusKm, func(p models.Provider) *models.Coordinates { return p.Coordinates })
	out := make([]models.Provider, 0, len(ranked))
	for _, r := range ranked {
		if len(out) == limit {
			break
		}
		p := r.Item
		p.Distance = r.Label()
		out = append(out, p)
	}
	return out, nil
}
