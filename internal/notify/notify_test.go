package notify

import "testing"

func TestNotifyMissingConfigIsSwallowed(t *testing.T) {
	n := Notifier{} // zero Config
	n.Notify("this should not panic or block")
}

func TestSendMissingConfigReturnsError(t *testing.T) {
	n := Notifier{Config: Config{Jid: "user@example.com"}}
	if err := n.send("hi"); err == nil {
		t.Error("expected an error when password/to are unset")
	}
}

func TestServerNameFromJid(t *testing.T) {
	if got := serverName("user@example.com"); got != "example.com" {
		t.Errorf("expected example.com, got %q", got)
	}
	if got := serverName("malformed"); got != "" {
		t.Errorf("expected empty string for a jid with no @, got %q", got)
	}
}
