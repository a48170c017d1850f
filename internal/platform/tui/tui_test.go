package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"a", runes("a"), core.ActionLeft, false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runes("d"), core.ActionRight, false},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", runes("p"), core.ActionPause, false},
		{"q", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.expected || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.expected, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("MapKeyToMenuAction(tab) = %v, expected %v", got, MenuActionScoreboard)
	}
	if got := km.MapKeyToMenuAction(runes("j")); got != MenuActionDown {
		t.Errorf("MapKeyToMenuAction(j) = %v, expected %v", got, MenuActionDown)
	}
}

func TestTickDelta(t *testing.T) {
	nominal := 16 * time.Millisecond
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		last     time.Time
		expected time.Duration
	}{
		{"first tick", time.Time{}, nominal},
		{"on time", now.Add(-20 * time.Millisecond), 20 * time.Millisecond},
		{"stalled", now.Add(-time.Second), maxTickLag * nominal},
		{"clock went back", now.Add(time.Second), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tickDelta(tc.last, now, nominal); got != tc.expected {
				t.Errorf("tickDelta() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// stubGame records the dt and input of every step.
type stubGame struct {
	steps  []time.Duration
	inputs []core.InputFrame
	state  core.GameState
	resets int
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{} }
func (g *stubGame) Render(dst *core.Screen) { dst.Clear() }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	g.steps = append(g.steps, dt)
	g.inputs = append(g.inputs, frame)
	g.state.Played += dt
	return core.StepResult{State: g.state}
}

func TestModelStepsWithRealTime(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 50, Seed: 1})
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	next, _ := m.Update(runes("d"))
	next, _ = next.Update(TickMsg(start))
	next, _ = next.Update(TickMsg(start.Add(30 * time.Millisecond)))
	m = next.(Model)

	if len(game.steps) != 2 {
		t.Fatalf("steps = %d, expected 2", len(game.steps))
	}
	if game.steps[0] != 20*time.Millisecond || game.steps[1] != 30*time.Millisecond {
		t.Errorf("dt = %v, expected [20ms 30ms]", game.steps)
	}
	if !game.inputs[0].Has(core.ActionRight) {
		t.Error("first step should see the right key")
	}
	if len(game.inputs[1].Actions) != 0 {
		t.Errorf("second step input = %v, expected it cleared", game.inputs[1].Actions)
	}
	if m.gameState.Played != 50*time.Millisecond {
		t.Errorf("Played = %v, expected 50ms", m.gameState.Played)
	}
}

func TestModelBackWhenPaused(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1})
	m.embedded = true

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).BackToMenu() {
		t.Fatal("Esc while running should pause, not leave")
	}

	m = next.(Model)
	m.gameState.Paused = true
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || cmd != nil {
		t.Error("Esc while paused should go back to the menu without quitting")
	}
}
