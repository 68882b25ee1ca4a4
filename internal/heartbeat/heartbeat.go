// Package heartbeat runs a periodic liveness probe against the ILP
// upstream (SPEC_FULL.md §4.11), grounded on the teacher's own
// gocron.NewScheduler()/s.Every(...).Do(...)/go s.Start() pattern in
// wind.InitWinds and main.go — a background refresh job run alongside
// the HTTP server, never on the request path.
package heartbeat

import (
	"context"
	"time"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/ilpclient"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/notify"
)

// Interval is how often the probe runs.
const Interval = 60

// Start fetches the drone list on a fixed schedule and notifies n on
// failure. It never mutates planner state — it only observes upstream
// health — and it runs forever on its own goroutine, so callers should
// invoke it once at startup and discard the scheduler reference.
func Start(client ilpclient.Client, n notify.Notifier) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := client.Ping(ctx); err != nil {
			log.WithError(err).Warn("heartbeat: upstream fetch failed")
			n.Notify("ILP upstream heartbeat failed: " + err.Error())
			return
		}
		log.Debug("heartbeat: upstream reachable")
	}

	s := gocron.NewScheduler()
	job := s.Every(Interval).Seconds()
	job.Do(probe)
	go s.Start()
}
