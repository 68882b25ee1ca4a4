package pathfind

import (
	"testing"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/geo"
)

func TestFindPathDirectRoute(t *testing.T) {
	start := geo.Position{Lng: 0, Lat: 0}
	goal := geo.Position{Lng: 0.003, Lat: 0}

	path := FindPath(start, goal, nil)
	if len(path) < 2 {
		t.Fatalf("expected a multi-point path, got %d points", len(path))
	}
	if !path[0].Equal(start) {
		t.Errorf("path should start at start: %v", path[0])
	}
	last := path[len(path)-1]
	if close, _ := geo.IsClose(last, goal); !close {
		t.Errorf("path should terminate close to goal, got %v", last)
	}
}

func TestFindPathAvoidsNoFlyZone(t *testing.T) {
	start := geo.Position{Lng: 0, Lat: 0}
	goal := geo.Position{Lng: 0.01, Lat: 0}

	blocking := geo.Region{Vertices: []geo.Position{
		{Lng: 0.003, Lat: -0.01},
		{Lng: 0.003, Lat: 0.01},
		{Lng: 0.007, Lat: 0.01},
		{Lng: 0.007, Lat: -0.01},
		{Lng: 0.003, Lat: -0.01},
	}}

	path, stats := FindPathWithStats(start, goal, []geo.Region{blocking})
	if len(path) == 0 {
		t.Fatal("expected a detour path around the no-fly zone")
	}
	if stats.Expansions == 0 {
		t.Error("expected non-zero expansions")
	}
	for _, p := range path {
		if geo.PointInPolygon(p, blocking.Vertices) {
			t.Errorf("path point %v falls inside the no-fly zone", p)
		}
	}
}

func TestFindPathEmptyOnInvalidInput(t *testing.T) {
	path := FindPath(geo.Position{Lng: 999, Lat: 0}, geo.Position{Lng: 0, Lat: 0}, nil)
	if len(path) != 0 {
		t.Errorf("expected empty path on invalid start, got %d points", len(path))
	}
}

func TestFindPathSameStartAndGoal(t *testing.T) {
	p := geo.Position{Lng: 1, Lat: 1}
	path := FindPath(p, p, nil)
	if len(path) != 1 {
		t.Fatalf("expected single-point path when start == goal, got %d", len(path))
	}
}
