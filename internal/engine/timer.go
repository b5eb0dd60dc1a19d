package engine

import (
	"context"

	"github.com/matchday-app/matchday/internal/model"
)

// The timer is a three-state countdown: idle (not running, not
// paused), running, paused. Transitions outside the table below are
// no-ops. The one-second tick cadence comes from outside the engine;
// Tick only applies the transition.

// StartTimer moves an idle or paused timer to running.
func (e *Engine) StartTimer(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Timer.IsRunning {
		return
	}
	e.state.Timer.IsRunning = true
	e.state.Timer.IsPaused = false
	e.persist(ctx)
	e.log.Info().Int("remaining", e.state.Timer.TimeRemaining).Msg("timer started")
}

// PauseTimer moves a running timer to paused.
func (e *Engine) PauseTimer(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Timer.IsRunning {
		return
	}
	e.state.Timer.IsRunning = false
	e.state.Timer.IsPaused = true
	e.persist(ctx)
	e.log.Info().Int("remaining", e.state.Timer.TimeRemaining).Msg("timer paused")
}

// ResetTimer returns the timer to idle at the full match duration from
// any state.
func (e *Engine) ResetTimer(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetTimerLocked()
	e.persist(ctx)
}

func (e *Engine) resetTimerLocked() {
	e.state.Timer = model.TimerState{TimeRemaining: e.state.Settings.MatchDuration * 60}
}

// Tick decrements a running timer by one second, floored at zero;
// hitting zero stops the clock. Ticking while not running is a no-op.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Timer.IsRunning {
		return
	}
	if e.state.Timer.TimeRemaining > 0 {
		e.state.Timer.TimeRemaining--
	}
	if e.state.Timer.TimeRemaining == 0 {
		e.state.Timer.IsRunning = false
		e.log.Info().Msg("timer expired")
	}
	e.persist(ctx)
}
