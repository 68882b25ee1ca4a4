// Package notify sends ops alerts over XMPP (SPEC_FULL.md §4.10),
// adapted from the teacher's xmpp.Xmpp: same Config shape and Send
// contract, using a logrus logger in place of the standard library
// logger and a method name matching the notifier's actual use here —
// reporting planning/upstream anomalies, not routing events.
package notify

import (
	"crypto/tls"
	"errors"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

// Config holds the XMPP account used to send ops notifications.
type Config struct {
	Host     string
	Jid      string
	Password string
	To       string
}

// Notifier sends a message to Config.To whenever the dispatch service
// wants to raise an ops alert. A zero-value Notifier (blank Config) is
// valid: Notify then sends nothing and logs a warning — SPEC_FULL.md
// requires that notifier failures never affect planning results.
type Notifier struct {
	Config Config
}

func serverName(jid string) string {
	parts := strings.Split(jid, "@")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Notify sends message to the configured recipient. Missing
// configuration is logged and swallowed rather than returned, because
// callers in the planning path must never let a notification failure
// propagate as a planning failure.
func (n Notifier) Notify(message string) {
	if err := n.send(message); err != nil {
		log.WithError(err).Warn("ops notification failed")
	}
}

func (n Notifier) send(message string) error {
	if len(n.Config.Jid) == 0 || len(n.Config.Password) == 0 || len(n.Config.To) == 0 {
		return errors.New("notify: missing xmpp config")
	}

	host := n.Config.Host
	if host == "" {
		host = serverName(n.Config.Jid)
	}

	xmpp.DefaultConfig = tls.Config{InsecureSkipVerify: true}

	options := xmpp.Options{
		Host:          host,
		User:          n.Config.Jid,
		Password:      n.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		Status:        "xa",
		StatusMessage: "dispatch planner ops channel",
	}

	talk, err := options.NewClient()
	if err != nil {
		return err
	}

	_, err = talk.Send(xmpp.Chat{Remote: n.Config.To, Type: "chat", Text: message})
	return err
}
