// Package api is the HTTP boundary (C8): request/response shapes,
// endpoint semantics, and error-taxonomy mapping per spec.md §6/§7.
// Grounded on the teacher's own api.server/InitServer shape in
// api/api.go — a small struct holding the service's collaborators,
// a mux.Router built once in InitServer, one method per route, and a
// getIp helper reused verbatim for request-scoped log fields.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/api/model"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/dispatch"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/geo"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/ilpclient"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/metrics"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/notify"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/query"
)

type server struct {
	cpuprofile bool
	client     ilpclient.Client
	notifier   notify.Notifier
}

// InitServer builds the router and wires every handler against client,
// the abstract fleet-data accessor (C3), and notifier, the ops-alert
// sink C7 reports planning summaries to. cpuprofile toggles a
// per-request CPU profile, matching the teacher's own s.cpuprofile
// flag in api/api.go. Every route is wrapped in a metrics middleware
// observing dispatch_http_requests_total/dispatch_http_request_duration_seconds
// per SPEC_FULL.md §4.9.
func InitServer(cpuprofile bool, client ilpclient.Client, notifier notify.Notifier) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(metricsMiddleware)

	s := server{cpuprofile: cpuprofile, client: client, notifier: notifier}

	router.HandleFunc("/", s.welcome).Methods(http.MethodGet)
	router.HandleFunc("/uid", s.uid).Methods(http.MethodGet)
	router.HandleFunc("/dronesWithCooling/{state}", s.dronesWithCooling).Methods(http.MethodGet)
	router.HandleFunc("/droneDetails/{id}", s.droneDetails).Methods(http.MethodGet)
	router.HandleFunc("/queryAsPath/{attribute}/{value}", s.queryAsPath).Methods(http.MethodGet)
	router.HandleFunc("/query", s.query).Methods(http.MethodPost)
	router.HandleFunc("/queryAvailableDrones", s.queryAvailableDrones).Methods(http.MethodPost)
	router.HandleFunc("/calcDeliveryPath", s.calcDeliveryPath).Methods(http.MethodPost)
	router.HandleFunc("/calcDeliveryPathAsGeoJson", s.calcDeliveryPathAsGeoJson).Methods(http.MethodPost)
	router.HandleFunc("/distanceTo", s.distanceTo).Methods(http.MethodPost)
	router.HandleFunc("/isCloseTo", s.isCloseTo).Methods(http.MethodPost)
	router.HandleFunc("/nextPosition", s.nextPosition).Methods(http.MethodPost)
	router.HandleFunc("/isInRegion", s.isInRegion).Methods(http.MethodPost)

	return router
}

// statusRecorder wraps http.ResponseWriter to capture the status code a
// handler actually wrote, defaulting to 200 when WriteHeader is never
// called (the same assumption net/http itself makes).
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware observes dispatch_http_requests_total and
// dispatch_http_request_duration_seconds for every request, labelled by
// method, the route's path template, and status, per SPEC_FULL.md §4.9.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		status := strconv.Itoa(rec.status)
		metrics.HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

// requestLogger attaches a correlation id (google/uuid, per SPEC_FULL.md
// §2) and the caller's IP to every log line for one request, mirroring
// the teacher's log.WithFields(...) call sites in api/api.go.
func requestLogger(r *http.Request, action string) *log.Entry {
	fields := log.Fields{
		"action":        action,
		"correlationId": uuid.New().String(),
	}
	if ip, err := getIP(r); err == nil {
		fields["ip"] = ip
	}
	return log.WithFields(fields)
}

func getIP(r *http.Request) (string, error) {
	if ip := r.Header.Get("X-REAL-IP"); net.ParseIP(ip) != nil {
		return ip, nil
	}
	for _, ip := range strings.Split(r.Header.Get("X-FORWARDED-FOR"), ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(ip) != nil {
		return ip, nil
	}
	return "", fmt.Errorf("no valid ip found")
}

func (s *server) fleet(ctx context.Context) ([]domain.Drone, []domain.ServicePoint, []domain.ServicePointAvailability, []geo.Region) {
	drones, _ := s.client.Drones(ctx)
	servicePoints, _ := s.client.ServicePoints(ctx)
	table, _ := s.client.Availability(ctx)
	regions, _ := s.client.RestrictedAreas(ctx)
	return drones, servicePoints, table, regions
}

func (s *server) welcome(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ILP dispatch planner — see /uid")
}

func (s *server) uid(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ilp-dispatch-planner")
}

func (s *server) dronesWithCooling(w http.ResponseWriter, r *http.Request) {
	state, err := strconv.ParseBool(mux.Vars(r)["state"])
	if err != nil {
		writeJSON(w, []string{})
		return
	}

	drones, _ := s.client.Drones(r.Context())
	ids := query.Filter(drones, []query.Predicate{
		{Attribute: string(query.AttrCooling), Operator: string(query.OpEqual), Value: strconv.FormatBool(state)},
	})
	writeJSON(w, ids)
}

func (s *server) droneDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	drones, _ := s.client.Drones(r.Context())
	for _, d := range drones {
		if d.ID == id {
			writeJSON(w, d)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *server) queryAsPath(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	drones, _ := s.client.Drones(r.Context())

	var ids []string
	for _, d := range drones {
		if query.Match(d, vars["attribute"], vars["value"]) {
			ids = append(ids, d.ID)
		}
	}
	writeJSON(w, ids)
}

func (s *server) query(w http.ResponseWriter, r *http.Request) {
	var predicates []model.Predicate
	_ = json.NewDecoder(r.Body).Decode(&predicates)

	queries := make([]query.Predicate, len(predicates))
	for i, p := range predicates {
		queries[i] = query.Predicate{Attribute: p.Attribute, Operator: p.Operator, Value: p.Value}
	}

	drones, _ := s.client.Drones(r.Context())
	writeJSON(w, query.Filter(drones, queries))
}

func (s *server) queryAvailableDrones(w http.ResponseWriter, r *http.Request) {
	var recs []model.Record
	_ = json.NewDecoder(r.Body).Decode(&recs)

	drones, _, table, _ := s.fleet(r.Context())
	domainRecs := toDomainRecords(recs)

	var ids []string
	for _, d := range drones {
		if canServeAll(d, domainRecs, table) {
			ids = append(ids, d.ID)
		}
	}
	writeJSON(w, ids)
}

func (s *server) calcDeliveryPath(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "calcDeliveryPath")
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	var recs []model.Record
	_ = json.NewDecoder(r.Body).Decode(&recs)

	start := time.Now()
	drones, servicePoints, table, regions := s.fleet(r.Context())
	result := dispatch.Plan(drones, servicePoints, table, regions, toDomainRecords(recs), s.notifier)
	logger.WithField("elapsed", time.Since(start).String()).Infof("planned %d sorties for %d records", len(result.DronePaths), len(recs))

	writeJSON(w, toWireResult(result))
}

func (s *server) calcDeliveryPathAsGeoJson(w http.ResponseWriter, r *http.Request) {
	var recs []model.Record
	_ = json.NewDecoder(r.Body).Decode(&recs)

	drones, servicePoints, table, regions := s.fleet(r.Context())
	ls := dispatch.AsGeoJSONLineString(drones, servicePoints, table, regions, toDomainRecords(recs))

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, ls.MarshalGeoJSON())
}

func (s *server) distanceTo(w http.ResponseWriter, r *http.Request) {
	var body model.DistanceRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	d, err := geo.Distance(body.From, body.To)
	if err != nil {
		writeNull(w)
		return
	}
	writeJSON(w, model.DistanceResponse{Distance: d})
}

func (s *server) isCloseTo(w http.ResponseWriter, r *http.Request) {
	var body model.IsCloseRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	close, err := geo.IsClose(body.From, body.To)
	if err != nil {
		writeNull(w)
		return
	}
	writeJSON(w, model.IsCloseResponse{Close: close})
}

func (s *server) nextPosition(w http.ResponseWriter, r *http.Request) {
	var body model.NextPositionRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	next, err := geo.NextPosition(body.Start, body.Angle)
	if err != nil {
		writeNull(w)
		return
	}
	writeJSON(w, next)
}

func (s *server) isInRegion(w http.ResponseWriter, r *http.Request) {
	var body model.IsInRegionRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	region := geo.Region{Vertices: body.Vertices}
	if !region.WellFormed() {
		writeNull(w)
		return
	}
	writeJSON(w, model.IsInRegionResponse{Inside: geo.PointInPolygon(body.Position, body.Vertices)})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeNull(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "null")
}

func canServeAll(d domain.Drone, recs []domain.Record, table []domain.ServicePointAvailability) bool {
	for _, r := range recs {
		if !canServeOne(d, r, table) {
			return false
		}
	}
	return true
}
