package sortie

import (
	"testing"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/geo"
)

func floatPtr(f float64) *float64 { return &f }

func testDrone(capacity float64, maxMoves int, costInit, costPerMove, costFinal float64) domain.Drone {
	return domain.Drone{
		ID:   "DRONE-1",
		Name: "Tester",
		Capability: &domain.Capability{
			Cooling:     true,
			Heating:     true,
			Capacity:    capacity,
			MaxMoves:    maxMoves,
			CostInitial: costInit,
			CostPerMove: costPerMove,
			CostFinal:   costFinal,
		},
	}
}

func testHome() domain.ServicePoint {
	return domain.ServicePoint{ID: 1, Name: "Base", Location: geo.Position{Lng: 0, Lat: 0}}
}

func mondayTable() []domain.ServicePointAvailability {
	return []domain.ServicePointAvailability{
		{
			ServicePointID: 1,
			Drones: []domain.DroneAvailability{
				{
					ID: "DRONE-1",
					Availability: []domain.Window{
						{DayOfWeek: domain.Monday, From: "00:00", Until: "23:59"},
					},
				},
			},
		},
	}
}

func nearbyRecord(id int, lng, lat float64, capacity, maxCost float64) domain.Record {
	r := domain.Record{
		ID:       id,
		Date:     "2026-08-03", // Monday
		Time:     "10:00:00",
		Delivery: geo.Position{Lng: lng, Lat: lat},
	}
	if capacity > 0 {
		r.Requirements.Capacity = floatPtr(capacity)
	}
	if maxCost > 0 {
		r.Requirements.MaxCost = floatPtr(maxCost)
	}
	return r
}

func TestFindMaxSubsetAcceptsFeasibleCandidate(t *testing.T) {
	drone := testDrone(100, 1000, 1, 1, 1)
	home := testHome()
	recs := []domain.Record{nearbyRecord(1, 0.003, 0, 5, 0)}

	got := FindMaxSubset(drone, home, recs, mondayTable(), nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 accepted record, got %d", len(got))
	}
}

func TestFindMaxSubsetRejectsOverCapacity(t *testing.T) {
	drone := testDrone(5, 1000, 1, 1, 1)
	home := testHome()
	recs := []domain.Record{nearbyRecord(1, 0.003, 0, 10, 0)}

	got := FindMaxSubset(drone, home, recs, mondayTable(), nil)
	if len(got) != 0 {
		t.Fatalf("expected capacity overflow to reject the candidate, got %d", len(got))
	}
}

func TestFindMaxSubsetRejectsOverMaxMoves(t *testing.T) {
	drone := testDrone(100, 1, 1, 1, 1)
	home := testHome()
	recs := []domain.Record{nearbyRecord(1, 0.01, 0, 5, 0)}

	got := FindMaxSubset(drone, home, recs, mondayTable(), nil)
	if len(got) != 0 {
		t.Fatalf("expected a 1-move budget to reject a multi-step delivery, got %d", len(got))
	}
}

func TestFindMaxSubsetOrdersByAscendingID(t *testing.T) {
	drone := testDrone(100, 1000, 1, 1, 1)
	home := testHome()
	recs := []domain.Record{
		nearbyRecord(2, 0.003, 0.003, 5, 0),
		nearbyRecord(1, 0.003, 0, 5, 0),
	}

	got := FindMaxSubset(drone, home, recs, mondayTable(), nil)
	if len(got) != 2 {
		t.Fatalf("expected both records accepted, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("expected ascending-id order, got %d, %d", got[0].ID, got[1].ID)
	}
}

func TestFindMaxSubsetSkipsIneligibleDrone(t *testing.T) {
	drone := domain.Drone{ID: "DRONE-1"} // no capability
	home := testHome()
	recs := []domain.Record{nearbyRecord(1, 0.003, 0, 5, 0)}

	got := FindMaxSubset(drone, home, recs, mondayTable(), nil)
	if got != nil {
		t.Errorf("expected nil for a drone with no recorded capability, got %v", got)
	}
}

func TestFindMaxSubsetMaxCostAmortised(t *testing.T) {
	// Expensive per-move cost; a tight maxCost on the second request
	// should reject it once amortised over 2 deliveries.
	drone := testDrone(100, 1000, 0, 10, 0)
	home := testHome()
	recs := []domain.Record{
		nearbyRecord(1, 0.003, 0, 5, 0),
		nearbyRecord(2, 0.003, 0.003, 5, 1), // maxCost=1, tiny budget
	}

	got := FindMaxSubset(drone, home, recs, mondayTable(), nil)
	if len(got) != 1 {
		t.Fatalf("expected the tight maxCost request to be rejected, kept %d", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("expected record 1 to remain accepted, got %d", got[0].ID)
	}
}

func TestFindMaxSubsetIgnoresUnavailableDrone(t *testing.T) {
	drone := testDrone(100, 1000, 1, 1, 1)
	home := testHome()
	recs := []domain.Record{nearbyRecord(1, 0.003, 0, 5, 0)}

	got := FindMaxSubset(drone, home, recs, nil, nil) // empty table, no windows
	if len(got) != 0 {
		t.Fatalf("expected no accepted records without an availability window, got %d", len(got))
	}
}
