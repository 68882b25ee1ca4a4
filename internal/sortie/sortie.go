// Package sortie implements C6, the greedy per-drone subset planner
// (findMaxSubset). Grounded on the pack's
// other_examples/romus204-quicksilver__greedy.go SolveVPR: sort
// candidates, walk them once, accept-or-skip against a running set of
// resource counters, never revisit a skipped candidate.
package sortie

import (
	"math"
	"sort"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/eligibility"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/geo"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/pathfind"
)

// FindMaxSubset returns a subset of remaining that drone can carry on a
// single sortie from home, honouring capability, capacity, maxMoves, and
// amortised maxCost constraints. The subset comes from one greedy walk
// over the eligible records in ascending id order; it is not guaranteed
// to be the largest feasible subset. A nil-capability drone can never
// carry anything.
func FindMaxSubset(drone domain.Drone, home domain.ServicePoint, remaining []domain.Record, table []domain.ServicePointAvailability, regions []geo.Region) []domain.Record {
	if drone.Capability == nil {
		return nil
	}
	cap := drone.Capability

	candidates := make([]domain.Record, 0, len(remaining))
	for _, r := range remaining {
		if !eligibility.CanServe(drone, r.Requirements) {
			continue
		}
		available, err := eligibility.IsAvailable(drone.ID, r.Date, r.Time, table)
		if err != nil || !available {
			continue
		}
		candidates = append(candidates, r)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	var chosen []domain.Record
	usedCapacity := 0.0
	usedMoves := 0
	currentPos := home.Location
	minMaxCost := math.Inf(1)

	for _, rec := range candidates {
		reqCapacity := 0.0
		if rec.Requirements.Capacity != nil {
			reqCapacity = *rec.Requirements.Capacity
		}
		if usedCapacity+reqCapacity > cap.Capacity {
			continue
		}

		forward := pathfind.FindPath(currentPos, rec.Delivery, regions)
		if len(forward) == 0 {
			continue
		}
		back := pathfind.FindPath(rec.Delivery, home.Location, regions)
		if len(back) == 0 {
			continue
		}

		forwardMoves := len(forward) - 1
		returnMoves := len(back) - 1
		movesIfIncluded := usedMoves + forwardMoves + returnMoves
		if movesIfIncluded > cap.MaxMoves {
			continue
		}

		mPrime := minMaxCost
		if rec.Requirements.MaxCost != nil && *rec.Requirements.MaxCost > 0 && *rec.Requirements.MaxCost < mPrime {
			mPrime = *rec.Requirements.MaxCost
		}
		if !math.IsInf(mPrime, 1) {
			flightCost := cap.CostInitial + float64(movesIfIncluded)*cap.CostPerMove + cap.CostFinal
			perDeliveryCost := flightCost / float64(len(chosen)+1)
			if perDeliveryCost > mPrime {
				continue
			}
		}

		chosen = append(chosen, rec)
		usedCapacity += reqCapacity
		usedMoves += forwardMoves
		currentPos = rec.Delivery
		minMaxCost = mPrime
	}

	return chosen
}
