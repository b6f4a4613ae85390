package monitor

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/shopauth/internal/auth"
	"github.com/fragmede/shopauth/internal/ui/messages"
)

// Sender delivers messages to the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Monitor watches the session token and reports when it expires.
type Monitor struct {
	session  *auth.Session
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	once     sync.Once
}

// New creates a new expiry monitor.
func New(session *auth.Session, interval time.Duration) *Monitor {
	return &Monitor{
		session:  session,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background polling loop.
func (m *Monitor) Start(sender Sender) {
	if m.interval <= 0 {
		return
	}
	go m.loop(sender)
}

// Stop halts the background polling.
func (m *Monitor) Stop() {
	m.once.Do(func() { close(m.stopCh) })
}

func (m *Monitor) loop(sender Sender) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Only report each token once.
	var reported string
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			if token, ok := m.check(); ok && token != reported {
				reported = token
				sender.Send(messages.SessionExpiredMsg{})
			}
		}
	}
}

// check reports whether the session holds a token whose expiry has passed.
func (m *Monitor) check() (string, bool) {
	token := m.session.Token()
	if token == "" {
		return "", false
	}
	return token, m.session.Claims().Expired(m.now())
}
