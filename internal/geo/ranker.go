package geo

import (
	"golang.org/x/exp/slices"

	"pieceJobBack/internal/models"
)

// Ranked pairs an item with its distance from the query origin.
// Known is false when the item has no coordinates.
type Ranked[T any] struct {
	Item       T
	DistanceKm float64
	Known      bool
}

// Rank filters items to those within radiusKm of origin and orders them by
// ascending distance. Items without coordinates are always kept and placed
// after every item with a known distance, in their original relative order.
// Ties keep input order. A NaN radius admits no item with a known distance.
func Rank[T any](items []T, origin models.Coordinates, radiusKm float64, coords func(T) *models.Coordinates) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		c := coords(item)
		if c == nil {
			out = append(out, Ranked[T]{Item: item})
			continue
		}
		d := DistanceKm(origin, *c)
		if !(d <= radiusKm) {
			continue
		}
		out = append(out, Ranked[T]{Item: item, DistanceKm: d, Known: true})
	}

	slices.SortStableFunc(out, func(a, b Ranked[T]) int {
		switch {
		case a.Known && !b.Known:
			return -1
		case !a.Known && b.Known:
			return 1
		case !a.Known && !b.Known:
			return 0
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		}
		return 0
	})
	return out
}

// Label returns the display distance, or "" when unknown.
func (r Ranked[T]) Label() string {
	if !r.Known {
		return ""
	}
	return FormatDistance(r.DistanceKm)
}
