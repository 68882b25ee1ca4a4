package api

import (
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/api/model"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/eligibility"
)

func toDomainRecords(recs []model.Record) []domain.Record {
	out := make([]domain.Record, len(recs))
	for i, r := range recs {
		out[i] = domain.Record{
			ID:       r.ID,
			Date:     r.Date,
			Time:     r.Time,
			Delivery: r.Delivery,
			Requirements: domain.Requirements{
				Cooling:  r.Requirements.Cooling,
				Heating:  r.Requirements.Heating,
				Capacity: r.Requirements.Capacity,
				MaxCost:  r.Requirements.MaxCost,
			},
		}
	}
	return out
}

func toWireResult(result domain.Result) model.Result {
	out := model.Result{TotalMoves: result.TotalMoves, TotalCost: result.TotalCost}
	for _, dp := range result.DronePaths {
		wireDP := model.DronePath{DroneID: dp.DroneID}
		for _, leg := range dp.Deliveries {
			wireDP.Deliveries = append(wireDP.Deliveries, model.DeliveryPath{
				DeliveryID: leg.DeliveryID,
				FlightPath: leg.FlightPath,
			})
		}
		out.DronePaths = append(out.DronePaths, wireDP)
	}
	return out
}

// canServeOne reports whether d can serve r outright: capability and
// availability both hold. maxCost is intentionally not checked here —
// it is sortie-planner-only (spec.md §4.5) — so this is a looser test
// than actually being selected onto a sortie with other deliveries.
func canServeOne(d domain.Drone, r domain.Record, table []domain.ServicePointAvailability) bool {
	if !eligibility.CanServe(d, r.Requirements) {
		return false
	}
	ok, err := eligibility.IsAvailable(d.ID, r.Date, r.Time, table)
	return err == nil && ok
}
