package eligibility

import (
	"testing"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
)

func boolPtr(b bool) *bool       { return &b }
func floatPtr(f float64) *float64 { return &f }

func coolingCapableDrone() domain.Drone {
	return domain.Drone{
		ID: "COOL-001",
		Capability: &domain.Capability{
			Cooling:  true,
			Heating:  false,
			Capacity: 50,
		},
	}
}

func TestCanServeCoolingMatch(t *testing.T) {
	d := coolingCapableDrone()
	req := domain.Requirements{Cooling: boolPtr(true)}
	if !CanServe(d, req) {
		t.Error("drone with cooling capability should serve a cooling requirement")
	}
}

func TestCanServeMissingCapabilityFails(t *testing.T) {
	d := domain.Drone{ID: "NOCAP-001"}
	req := domain.Requirements{Cooling: boolPtr(true)}
	if CanServe(d, req) {
		t.Error("drone without capability record should never serve any requirement")
	}
}

func TestCanServeFalseRequirementImposesNoConstraint(t *testing.T) {
	d := domain.Drone{ID: "BASIC-001", Capability: &domain.Capability{Cooling: false, Heating: false, Capacity: 10}}
	req := domain.Requirements{Cooling: boolPtr(false), Heating: boolPtr(false)}
	if !CanServe(d, req) {
		t.Error("cooling=false/heating=false requirements should not disqualify a non-cooling/non-heating drone")
	}
}

func TestCanServeCapacityShortfall(t *testing.T) {
	d := coolingCapableDrone()
	req := domain.Requirements{Capacity: floatPtr(100)}
	if CanServe(d, req) {
		t.Error("drone with capacity 50 should not serve a capacity-100 requirement")
	}
}

func availabilityTable() []domain.ServicePointAvailability {
	return []domain.ServicePointAvailability{
		{
			ServicePointID: 1,
			Drones: []domain.DroneAvailability{
				{
					ID: "COOL-001",
					Availability: []domain.Window{
						{DayOfWeek: domain.Monday, From: "08:00", Until: "18:00"},
					},
				},
			},
		},
	}
}

func TestIsAvailableWeekdayMatch(t *testing.T) {
	ok, err := IsAvailable("COOL-001", "2026-08-03", "12:00:00", availabilityTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("12:00:00 on a Monday should be inside the 08:00-18:00 window")
	}
}

func TestIsAvailableWeekendMismatch(t *testing.T) {
	// 2026-08-08 is a Saturday; the drone only has a Monday window.
	ok, err := IsAvailable("COOL-001", "2026-08-08", "12:00:00", availabilityTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("drone has no Saturday window and should be unavailable")
	}
}

func TestIsAvailableBoundaryExclusive(t *testing.T) {
	ok, err := IsAvailable("COOL-001", "2026-08-03", "08:00:00", availabilityTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("exact window start should be exclusive and therefore unavailable")
	}

	ok, err = IsAvailable("COOL-001", "2026-08-03", "18:00:00", availabilityTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("exact window end should be exclusive and therefore unavailable")
	}
}

func TestIsAvailableAcceptsBothTimeFormats(t *testing.T) {
	ok, err := IsAvailable("COOL-001", "2026-08-03", "12:00", availabilityTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("HH:MM should be accepted the same as HH:MM:SS")
	}
}

func TestIsAvailableUnknownDroneIsUnavailable(t *testing.T) {
	ok, err := IsAvailable("GHOST-001", "2026-08-03", "12:00:00", availabilityTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("a drone with no listed windows should never be available")
	}
}

func TestIsAvailableInvalidDate(t *testing.T) {
	if _, err := IsAvailable("COOL-001", "not-a-date", "12:00:00", availabilityTable()); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHomeServicePointFound(t *testing.T) {
	sps := []domain.ServicePoint{{ID: 1, Name: "Base One"}}
	sp, ok := HomeServicePoint("COOL-001", sps, availabilityTable())
	if !ok {
		t.Fatal("expected to find home service point")
	}
	if sp.ID != 1 {
		t.Errorf("expected service point 1, got %d", sp.ID)
	}
}

func TestHomeServicePointNotFound(t *testing.T) {
	_, ok := HomeServicePoint("GHOST-001", nil, availabilityTable())
	if ok {
		t.Error("unlisted drone should have no home service point")
	}
}
