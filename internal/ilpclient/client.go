// Package ilpclient is the abstract read-only accessor for fleet data
// (C3 in SPEC_FULL.md): drones, service points, the drone-for-service-
// point availability table, and restricted-area regions. The core only
// ever depends on the Client interface; HTTPClient is the production
// implementation, grounded on the teacher's own upstream-fetch shape
// (a single base URL plus a handful of GET endpoints, e.g.
// wind.LoadAll2 / land.InitLand reading one upstream source apiece).
package ilpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/domain"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/geo"
)

// DefaultEndpoint is used when ILP_ENDPOINT is blank or unset, matching
// spec.md §6's "blank or unset value falls back to a hardcoded default."
const DefaultEndpoint = "https://ilp-rest.azurewebsites.net"

// Client is the read-only fleet-data port the planner depends on. Any
// collection may come back empty; the core treats missing collections
// as empty and degrades gracefully (spec.md §4.3).
type Client interface {
	Drones(ctx context.Context) ([]domain.Drone, error)
	ServicePoints(ctx context.Context) ([]domain.ServicePoint, error)
	Availability(ctx context.Context) ([]domain.ServicePointAvailability, error)
	RestrictedAreas(ctx context.Context) ([]geo.Region, error)

	// Ping reports whether the upstream ILP is reachable, unlike the
	// collection accessors above it does not swallow errors — the
	// heartbeat probe needs a real failure signal to notify on.
	Ping(ctx context.Context) error
}

// HTTPClient fetches fleet data from the upstream ILP over HTTP.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient builds an HTTPClient against baseURL, falling back to
// DefaultEndpoint when baseURL is blank.
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultEndpoint
	}
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ilpclient: GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Drones fetches /drones. Upstream-unavailable is surfaced as an empty
// slice, not an error — spec.md §4.3/§7 treat missing fleet data as
// graceful degradation, not a planner failure.
func (c *HTTPClient) Drones(ctx context.Context) ([]domain.Drone, error) {
	var drones []domain.Drone
	if err := c.get(ctx, "/drones", &drones); err != nil {
		return nil, nil
	}
	return drones, nil
}

// ServicePoints fetches /service-points.
func (c *HTTPClient) ServicePoints(ctx context.Context) ([]domain.ServicePoint, error) {
	var sps []domain.ServicePoint
	if err := c.get(ctx, "/service-points", &sps); err != nil {
		return nil, nil
	}
	return sps, nil
}

// Availability fetches /drones-for-service-points.
func (c *HTTPClient) Availability(ctx context.Context) ([]domain.ServicePointAvailability, error) {
	var table []domain.ServicePointAvailability
	if err := c.get(ctx, "/drones-for-service-points", &table); err != nil {
		return nil, nil
	}
	return table, nil
}

// Ping fetches /drones and reports the raw error, if any, without the
// graceful-degradation swallowing the other accessors apply.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var drones []domain.Drone
	return c.get(ctx, "/drones", &drones)
}

// RestrictedAreas fetches /restricted-areas.
func (c *HTTPClient) RestrictedAreas(ctx context.Context) ([]geo.Region, error) {
	var raw [][]geo.Position
	if err := c.get(ctx, "/restricted-areas", &raw); err != nil {
		return nil, nil
	}
	regions := make([]geo.Region, 0, len(raw))
	for _, vertices := range raw {
		regions = append(regions, geo.Region{Vertices: vertices})
	}
	return regions, nil
}
