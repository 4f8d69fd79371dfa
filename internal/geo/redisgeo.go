package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/redis/go-redis/v9"

	"pieceJobBack/internal/models"
)

// NearbyProvider is a provider returned from Redis GEO queries.
type NearbyProvider struct {
	ID          string
	DistanceKm  float64
	Coordinates models.Coordinates
}

// ProviderLocator keeps the positions of online providers in a Redis GEO set.
type ProviderLocator struct {
	rdb  *redis.Client
	city string
}

// NewProviderLocator creates a locator scoped to a city key.
func NewProviderLocator(rdb *redis.Client, city string) *ProviderLocator {
	return &ProviderLocator{rdb: rdb, city: normalizeCity(city)}
}

func normalizeCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return "default"
	}
	return city
}

func (l *ProviderLocator) key() string {
	return fmt.Sprintf("providers:%s:online", l.city)
}

func memberName(providerID string) string {
	return "provider:" + providerID
}

func parseProviderMember(member string) (string, error) {
	id, ok := strings.CutPrefix(member, "provider:")
	if !ok || id == "" {
		return "", fmt.Errorf("invalid member %q", member)
	}
	return id, nil
}

// Update stores the provider position after validating the coordinates.
func (l *ProviderLocator) Update(ctx context.Context, providerID string, c models.Coordinates) error {
	if providerID == "" {
		return errors.New("provider locator: empty provider id")
	}
	if !c.Valid() {
		return fmt.Errorf("provider locator: invalid coords lat=%.8f lon=%.8f", c.Latitude, c.Longitude)
	}
	if math.Abs(c.Latitude) < 1e-4 && math.Abs(c.Longitude) < 1e-4 {
		return fmt.Errorf("provider locator: near-zero coords lat=%.8f lon=%.8f", c.Latitude, c.Longitude)
	}
	return l.rdb.GeoAdd(ctx, l.key(), &redis.GeoLocation{
		Name:      memberName(providerID),
		Longitude: c.Longitude,
		Latitude:  c.Latitude,
	}).Err()
}

// GoOffline removes the provider from the online set.
func (l *ProviderLocator) GoOffline(ctx context.Context, providerID string) error {
	return l.rdb.ZRem(ctx, l.key(), memberName(providerID)).Err()
}

// Nearby returns online providers within radiusKm sorted by distance (ascending).
func (l *ProviderLocator) Nearby(ctx context.Context, origin models.Coordinates, radiusKm float64, limit int) ([]NearbyProvider, error) {
	res, err := l.rdb.GeoSearchLocation(ctx, l.key(), &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  origin.Longitude,
			Latitude:   origin.Latitude,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	providers := make([]NearbyProvider, 0, len(res))
	for _, item := range res {
		id, err := parseProviderMember(item.Name)
		if err != nil {
			continue
		}
		providers = append(providers, NearbyProvider{
			ID:          id,
			DistanceKm:  item.Dist,
			Coordinates: models.Coordinates{Latitude: item.Latitude, Longitude: item.Longitude},
		})
	}
	return providers, nil
}
