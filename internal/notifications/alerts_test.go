package notifications

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kjannette/ifsol-backend/internal/pricing"
)

func newCapturingAlerts(interval time.Duration) (*DegradationAlerts, *[]string) {
	var sent []string
	a := NewDegradationAlerts(NewSender("", "TestBot"), interval)
	a.send = func(al Alert) { sent = append(sent, al.String()) }
	return a, &sent
}

func TestDegradationAlerts_ThrottlesPerComponent(t *testing.T) {
	a, sent := newCapturingAlerts(time.Hour)

	a.Degraded("historical", pricing.ReasonStatus, errors.New("status 429"))
	a.Degraded("historical", pricing.ReasonStatus, nil)
	a.Degraded("historical", pricing.ReasonEmpty, nil)
	a.Degraded("current:coingecko", pricing.ReasonTransport, nil)

	if len(*sent) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %v", len(*sent), *sent)
	}
	if !strings.Contains((*sent)[0], "historical") || !strings.Contains((*sent)[0], "status 429") {
		t.Fatalf("unexpected first alert: %s", (*sent)[0])
	}
	if !strings.Contains((*sent)[1], "current:coingecko") {
		t.Fatalf("unexpected second alert: %s", (*sent)[1])
	}
	if a.suppressed["historical"] != 2 {
		t.Fatalf("suppressed: got %d, want 2", a.suppressed["historical"])
	}
}

func TestDegradationAlerts_ReportsSuppressedCount(t *testing.T) {
	a, sent := newCapturingAlerts(20 * time.Millisecond)

	a.Degraded("history", pricing.ReasonEmpty, nil)
	a.Degraded("history", pricing.ReasonEmpty, nil)
	a.Degraded("history", pricing.ReasonEmpty, nil)
	time.Sleep(50 * time.Millisecond)
	a.Degraded("history", pricing.ReasonEmpty, nil)

	if len(*sent) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %v", len(*sent), *sent)
	}
	if !strings.Contains((*sent)[1], "+2 more") {
		t.Fatalf("expected suppressed count in %q", (*sent)[1])
	}
	t.Logf("alerts: %v", *sent)
}
