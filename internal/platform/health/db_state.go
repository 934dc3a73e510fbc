package health

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

// DBSnapshot is a point-in-time view of database connectivity.
type DBSnapshot struct {
	Connected   bool
	LastChecked time.Time
	LastError   string
	Attempts    int
}

// DBState tracks whether the database is reachable. Safe for concurrent use.
type DBState struct {
	mu       sync.RWMutex
	snapshot DBSnapshot
	now      func() time.Time
}

func NewDBState() *DBState {
	return &DBState{now: time.Now}
}

func (s *DBState) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Connected
}

func (s *DBState) Snapshot() DBSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Record stores the outcome of a connect attempt or ping.
func (s *DBState) Record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Attempts++
	s.snapshot.LastChecked = s.now().UTC()
	if err != nil {
		s.snapshot.Connected = false
		s.snapshot.LastError = err.Error()
		return
	}
	s.snapshot.Connected = true
	s.snapshot.LastError = ""
}

// MarkConnected sets the state to healthy without counting an attempt.
func (s *DBState) MarkConnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Connected = true
	s.snapshot.LastChecked = s.now().UTC()
	s.snapshot.LastError = ""
}

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Monitor pings db every interval until ctx is done and records each result.
// Connectivity changes are logged once per transition.
func (s *DBState) Monitor(ctx context.Context, db Pinger, interval time.Duration, logger *logging.Logger) {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			wasConnected := s.Connected()
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			err := db.PingContext(pingCtx)
			cancel()
			if ctx.Err() != nil {
				return
			}
			s.Record(err)

			switch {
			case err != nil && wasConnected:
				logger.ErrorContext(ctx, "database connection lost", "error", err)
			case err == nil && !wasConnected:
				logger.InfoContext(ctx, "database connection restored")
			}
		}
	}
}
