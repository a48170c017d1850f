// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxTickLag caps the simulated time of one tick, in nominal tick intervals,
// so a stalled terminal does not fast-forward the game.
const maxTickLag = 4

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickDelta returns the time elapsed since last, clamped to
// [0, maxTickLag*nominal]. The first tick (zero last) gets nominal.
func tickDelta(last, now time.Time, nominal time.Duration) time.Duration {
	if last.IsZero() {
		return nominal
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	return min(dt, maxTickLag*nominal)
}
