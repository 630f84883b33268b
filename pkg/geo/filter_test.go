package geo

import (
	"testing"

	"github.com/saferide-app/saferide-go/pkg/uuid"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.New()
	if err != nil {
		t.Fatalf("uuid.New: %v", err)
	}
	return id
}

func TestFilterWithinRadius_ExcludesObserver(t *testing.T) {
	observer := mustUUID(t)
	other := mustUUID(t)

	candidates := []Candidate[string]{
		{OwnerID: observer, Latitude: -23.5505, Longitude: -46.6333, Payload: "mine"},
		{OwnerID: other, Latitude: -23.5505, Longitude: -46.6333, Payload: "theirs"},
	}

	matches := FilterWithinRadius(-23.5505, -46.6333, observer, 10, candidates)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Payload != "theirs" {
		t.Errorf("observer's own candidate must be excluded, got %q", matches[0].Payload)
	}
}

func TestFilterWithinRadius_RadiusBound(t *testing.T) {
	observer := mustUUID(t)
	near := mustUUID(t)
	far := mustUUID(t)

	candidates := []Candidate[string]{
		{OwnerID: near, Latitude: -23.5510, Longitude: -46.6330, Payload: "near"}, // ~60m
		{OwnerID: far, Latitude: -22.9068, Longitude: -43.1729, Payload: "far"},   // ~360km
	}

	matches := FilterWithinRadius(-23.5505, -46.6333, observer, 2.0, candidates)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Payload != "near" {
		t.Errorf("got %q, want %q", matches[0].Payload, "near")
	}
	if matches[0].DistanceKm < 0 || matches[0].DistanceKm > 2.0 {
		t.Errorf("returned distance %v outside [0, 2.0]", matches[0].DistanceKm)
	}

	// no returned entry may ever exceed the radius
	for _, radius := range []float64{0.001, 0.5, 5, 10} {
		for _, m := range FilterWithinRadius(-23.5505, -46.6333, observer, radius, candidates) {
			if m.DistanceKm > radius {
				t.Errorf("radius %v: match with distance %v leaked through", radius, m.DistanceKm)
			}
		}
	}
}

func TestFilterWithinRadius_PreservesInputOrder(t *testing.T) {
	observer := mustUUID(t)

	// 2nd candidate is closer than the 1st; order must still follow input
	candidates := []Candidate[int]{
		{OwnerID: mustUUID(t), Latitude: -23.5600, Longitude: -46.6400, Payload: 1},
		{OwnerID: mustUUID(t), Latitude: -23.5506, Longitude: -46.6334, Payload: 2},
	}

	matches := FilterWithinRadius(-23.5505, -46.6333, observer, 10, candidates)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Payload != 1 || matches[1].Payload != 2 {
		t.Errorf("input order not preserved: got [%d, %d]", matches[0].Payload, matches[1].Payload)
	}
}

func TestFilterWithinRadius_EmptyInput(t *testing.T) {
	observer := mustUUID(t)
	if got := FilterWithinRadius[string](0, 0, observer, 10, nil); len(got) != 0 {
		t.Errorf("expected no matches on empty input, got %d", len(got))
	}
}
