package geo

import "github.com/saferide-app/saferide-go/pkg/uuid"

// Candidate is anything with an owner and a position that can be proximity-filtered.
type Candidate[T any] struct {
	OwnerID   uuid.UUID
	Latitude  float64
	Longitude float64
	Payload   T
}

// Match is a candidate that passed the filter, annotated with its distance.
type Match[T any] struct {
	Payload    T
	DistanceKm float64
}

// FilterWithinRadius keeps candidates within radiusKm of the observer, skipping
// those owned by the observer itself. Pure function: input order is preserved,
// no sorting by distance.
func FilterWithinRadius[T any](observerLat, observerLon float64, observerID uuid.UUID, radiusKm float64, candidates []Candidate[T]) []Match[T] {
	matches := make([]Match[T], 0, len(candidates))

	for _, c := range candidates {
		if c.OwnerID == observerID {
			continue
		}
		distance := HaversineDistance(observerLat, observerLon, c.Latitude, c.Longitude)
		if distance <= radiusKm {
			matches = append(matches, Match[T]{
				Payload:    c.Payload,
				DistanceKm: distance,
			})
		}
	}

	return matches
}
