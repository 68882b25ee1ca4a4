// Package config loads the dispatch service's environment-driven
// settings, grounded directly on the teacher's own flag/ff setup in
// main.go: a flag.FlagSet of string and bool flags, parsed with
// ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix()) so each flag
// doubles as an environment variable of the same (dashed-to-underscore)
// name.
package config

import (
	"flag"

	"github.com/peterbourgon/ff"

	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/ilpclient"
	"github.com/FrighteningMonsters/ilp-dispatch-planner/internal/notify"
)

// Config holds every environment-driven setting the service needs.
type Config struct {
	ILPEndpoint string
	HTTPAddr    string
	CPUProfile  bool
	XMPP        notify.Config
}

// Load parses args (normally os.Args[1:]) against flags that double as
// environment variables, per spec.md §6 ("a blank or unset value falls
// back to a hardcoded default" for ILP_ENDPOINT).
func Load(args []string) Config {
	fs := flag.NewFlagSet("dispatch-server", flag.ExitOnError)
	var (
		ilpEndpoint  = fs.String("ilp-endpoint", "", "base URL of the upstream ILP")
		httpAddr     = fs.String("http-addr", ":8888", "address the HTTP server listens on")
		cpuProfile   = fs.Bool("cpu-profile", false, "enable per-request CPU profiling")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
	)

	_ = ff.Parse(fs, args, ff.WithEnvVarNoPrefix())

	endpoint := *ilpEndpoint
	if endpoint == "" {
		endpoint = ilpclient.DefaultEndpoint
	}

	return Config{
		ILPEndpoint: endpoint,
		HTTPAddr:    *httpAddr,
		CPUProfile:  *cpuProfile,
		XMPP: notify.Config{
			Host:     *xmppHost,
			Jid:      *xmppJid,
			Password: *xmppPassword,
			To:       *xmppTo,
		},
	}
}
