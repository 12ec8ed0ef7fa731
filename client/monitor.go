package client

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const DefaultMonitorInterval = 60 * time.Second

// TokenMonitor periodically verifies the session token and signs out when it is rejected.
type TokenMonitor struct {
	Session  *Session
	Interval time.Duration
	// Skip pauses checks while it returns true, e.g. on the login page.
	Skip func() bool
}

func NewTokenMonitor(s *Session) *TokenMonitor {
	return &TokenMonitor{Session: s, Interval: DefaultMonitorInterval}
}

// Run checks on every tick until ctx is cancelled.
func (m *TokenMonitor) Run(ctx context.Context) {
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Check(ctx)
		}
	}
}

// Check runs a single verification round.
func (m *TokenMonitor) Check(ctx context.Context) {
	if m.Skip != nil && m.Skip() {
		return
	}
	state := m.Session.State()
	if state.Loading {
		return
	}
	if state.User == nil {
		m.Session.SignOut(ctx)
		return
	}
	if _, err := m.Session.Client().VerifyToken(ctx, m.Session.Token()); err != nil {
		if ctx.Err() != nil {
			return
		}
		zap.L().Info("認証確認エラー", zap.Error(err))
		m.Session.SignOut(ctx)
	}
}
