// Package dispatch implements C7, the outer planning loop: repeatedly
// ask the sortie planner (C6) for the best (drone, home, subset) triple
// across the whole fleet, materialise its concrete flight path, and
// remove the chosen deliveries until none remain. Grounded on the
// teacher's own outer-loop shape in route.Context's isochrone run —
// iterate until a termination condition, accumulate results, advance
// state — generalised here from per-tick isochrone expansion to
// per-sortie subset selection.
package dispatch

import (
	"fmt"
	"sort"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/eligibility"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/geo"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/metrics"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/notify"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/pathfind"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/sortie"
)

// Plan runs the outer greedy loop to exhaustion and returns the overall
// result. Empty input, or a fleet that cannot serve anything, yields an
// empty result — never an error (spec.md's "failure semantics across
// the core": infeasibility is not an error).
//
// It observes the C7 metrics named in SPEC_FULL.md §4.9
// (dispatch_sorties_emitted_total, dispatch_pathfinder_expansions_total)
// and, once planning settles, sends notifier a one-line ops summary per
// §4.10: deliveries requested, deliveries served, sorties flown, total
// cost.
func Plan(drones []domain.Drone, servicePoints []domain.ServicePoint, table []domain.ServicePointAvailability, regions []geo.Region, recs []domain.Record, notifier notify.Notifier) domain.Result {
	remaining := append([]domain.Record(nil), recs...)
	result := domain.Result{}
	served := 0

	for len(remaining) > 0 {
		bestDrone, bestHome, bestSubset := bestSortie(drones, servicePoints, table, regions, remaining)
		if len(bestSubset) == 0 {
			break
		}

		dronePath, moves, cost := buildDronePath(bestDrone, bestHome, bestSubset, regions)
		result.DronePaths = append(result.DronePaths, dronePath)
		result.TotalMoves += moves
		result.TotalCost += cost
		served += len(bestSubset)
		metrics.SortiesEmitted.Inc()

		remaining = removeChosen(remaining, bestSubset)
	}

	metrics.DeliveriesUnserved.Add(float64(len(remaining)))

	notifier.Notify(fmt.Sprintf(
		"dispatch plan: %d delivery(s) requested, %d served, %d sortie(s) flown, total cost %.2f",
		len(recs), served, len(result.DronePaths), result.TotalCost,
	))

	return result
}

// bestSortie evaluates every drone with a home service point and
// returns the (drone, home, subset) triple with the largest subset.
// Ties go to the first drone encountered, per spec.md §4.7.
func bestSortie(drones []domain.Drone, servicePoints []domain.ServicePoint, table []domain.ServicePointAvailability, regions []geo.Region, remaining []domain.Record) (domain.Drone, domain.ServicePoint, []domain.Record) {
	var bestDrone domain.Drone
	var bestHome domain.ServicePoint
	var bestSubset []domain.Record

	for _, d := range drones {
		home, ok := eligibility.HomeServicePoint(d.ID, servicePoints, table)
		if !ok {
			continue
		}
		subset := sortie.FindMaxSubset(d, home, remaining, table, regions)
		if len(subset) > len(bestSubset) {
			bestDrone, bestHome, bestSubset = d, home, subset
		}
	}

	return bestDrone, bestHome, bestSubset
}

// buildDronePath materialises the concrete flight path for one
// drone's chosen subset: A* leg to each delivery in ascending id
// order, hover-duplicated, then a final return-to-home leg. Aborts at
// the first empty leg, returning whatever was built so far — a sortie
// is never partially emitted beyond the leg that actually failed.
func buildDronePath(drone domain.Drone, home domain.ServicePoint, chosen []domain.Record, regions []geo.Region) (domain.DronePath, int, float64) {
	sorted := append([]domain.Record(nil), chosen...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	path := domain.DronePath{DroneID: drone.ID}
	current := home.Location
	totalMoves := 0

	for _, rec := range sorted {
		leg, stats := pathfind.FindPathWithStats(current, rec.Delivery, regions)
		metrics.PathfinderExpansions.Add(float64(stats.Expansions))
		if len(leg) == 0 {
			return path, totalMoves, sortieCost(drone, totalMoves)
		}
		totalMoves += len(leg) - 1
		flightPath := withHover(leg)
		path.Deliveries = append(path.Deliveries, domain.DeliveryPath{
			DeliveryID: rec.ID,
			FlightPath: flightPath,
		})
		current = leg[len(leg)-1]
	}

	returnLeg, returnStats := pathfind.FindPathWithStats(current, home.Location, regions)
	metrics.PathfinderExpansions.Add(float64(returnStats.Expansions))
	if len(returnLeg) == 0 {
		return path, totalMoves, sortieCost(drone, totalMoves)
	}
	totalMoves += len(returnLeg) - 1
	path.Deliveries = append(path.Deliveries, domain.DeliveryPath{
		DeliveryID: domain.ReturnLegDeliveryID,
		FlightPath: withHover(returnLeg),
	})

	return path, totalMoves, sortieCost(drone, totalMoves)
}

// withHover appends a duplicate of the final position, per spec.md §3
// and §8's "path hover" invariant.
func withHover(leg []geo.Position) []geo.Position {
	out := make([]geo.Position, len(leg)+1)
	copy(out, leg)
	out[len(leg)] = leg[len(leg)-1]
	return out
}

func sortieCost(drone domain.Drone, moves int) float64 {
	if drone.Capability == nil {
		return 0
	}
	return drone.Capability.CostInitial + float64(moves)*drone.Capability.CostPerMove + drone.Capability.CostFinal
}

// removeChosen returns remaining with every record whose id appears in
// chosen removed.
func removeChosen(remaining []domain.Record, chosen []domain.Record) []domain.Record {
	removed := make(map[int]bool, len(chosen))
	for _, c := range chosen {
		removed[c.ID] = true
	}
	out := make([]domain.Record, 0, len(remaining))
	for _, r := range remaining {
		if !removed[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// AsGeoJSONLineString finds the single drone whose findMaxSubset
// against recs equals recs in its entirety (first match wins),
// builds its drone path, and concatenates every leg's coordinates
// into one LineString. No such drone yields an empty LineString.
func AsGeoJSONLineString(drones []domain.Drone, servicePoints []domain.ServicePoint, table []domain.ServicePointAvailability, regions []geo.Region, recs []domain.Record) LineString {
	if len(recs) == 0 {
		return LineString{Type: "LineString", Coordinates: [][2]float64{}}
	}

	for _, d := range drones {
		home, ok := eligibility.HomeServicePoint(d.ID, servicePoints, table)
		if !ok {
			continue
		}
		subset := sortie.FindMaxSubset(d, home, recs, table, regions)
		if len(subset) != len(recs) {
			continue
		}

		dronePath, _, _ := buildDronePath(d, home, subset, regions)
		var coords [][2]float64
		for _, leg := range dronePath.Deliveries {
			for _, p := range leg.FlightPath {
				coords = append(coords, [2]float64{p.Lng, p.Lat})
			}
		}
		return LineString{Type: "LineString", Coordinates: coords}
	}
	return LineString{Type: "LineString", Coordinates: [][2]float64{}}
}
