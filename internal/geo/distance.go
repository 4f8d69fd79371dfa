package geo

import (
	"fmt"
	"math"

	"pieceJobBack/internal/models"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points using the haversine formula.
func DistanceKm(a, b models.Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// WithinRadius reports whether point lies within radiusKm of center (inclusive).
func WithinRadius(center, point models.Coordinates, radiusKm float64) bool {
	return DistanceKm(center, point) <= radiusKm
}

// FormatDistance renders a distance for display: meters below 1 km, one decimal kilometre otherwise.
func FormatDistance(km float64) string {
	if m := math.Round(km * 1000); m < 1000 {
		return fmt.Sprintf("%dm away", int(m))
	}
	return fmt.Sprintf("%.1fkm away", km)
}

func toRadians(v float64) float64 {
	return v * math.Pi / 180
}
