// Command dispatch-server runs the ILP dispatch planner's HTTP boundary.
// Wiring style follows the teacher's own main.go: parse flags/env with
// ff, build the XMPP notifier, kick off a background gocron job, mount
// the router, and serve — plus a Prometheus /metrics endpoint and the
// stdlib pprof handlers the teacher imports for its own debug surface.
package main

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	_ "net/http/pprof"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/api"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/config"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/heartbeat"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/ilpclient"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/metrics"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/notify"
)

func main() {
	cfg := config.Load(os.Args[1:])

	log.WithField("endpoint", cfg.ILPEndpoint).Info("loaded configuration")

	client := ilpclient.NewHTTPClient(cfg.ILPEndpoint)
	notifier := notify.Notifier{Config: cfg.XMPP}

	metrics.RegisterDefault()
	heartbeat.Start(client, notifier)

	router := api.InitServer(cfg.CPUProfile, client, notifier)
	router.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	logged := handlers.CombinedLoggingHandler(log.StandardLogger().Writer(), router)

	log.WithField("addr", cfg.HTTPAddr).Info("starting dispatch server")
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, logged))
}
