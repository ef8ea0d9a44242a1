package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/roon-tui/roon-tui/internal/roon"
)

const kitchenZones = `[{"zoneId":"z1","displayName":"Kitchen","state":"playing","outputs":[],"settings":{"loop":"disabled","shuffle":false,"autoRadio":false}}]`

// scriptedRunner stands in for the controller binary. Responses are keyed by
// the first argument; queued responses are consumed before the fixed ones.
type scriptedRunner struct {
	calls     [][]string
	responses map[string]string
	queue     map[string][]string
	errs      map[string]error
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{
		responses: map[string]string{},
		queue:     map[string][]string{},
		errs:      map[string]error{},
	}
}

func (r *scriptedRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	cmd := args[0]
	if err, ok := r.errs[cmd]; ok {
		return nil, err
	}
	if q := r.queue[cmd]; len(q) > 0 {
		r.queue[cmd] = q[1:]
		return []byte(q[0]), nil
	}
	return []byte(r.responses[cmd]), nil
}

// commands returns the recorded calls whose first argument is not "zones".
func (r *scriptedRunner) commands() [][]string {
	var out [][]string
	for _, c := range r.calls {
		if c[0] != "zones" {
			out = append(out, c)
		}
	}
	return out
}

func (r *scriptedRunner) count(cmd string) int {
	n := 0
	for _, c := range r.calls {
		if c[0] == cmd {
			n++
		}
	}
	return n
}

func (r *scriptedRunner) reset() {
	r.calls = nil
}

// harness wires an App, a Dispatcher and a Handler to a scripted controller,
// the way the event loop does.
type harness struct {
	t       *testing.T
	app     *App
	runner  *scriptedRunner
	handler *Handler
	disp    *Dispatcher
	clock   time.Time
}

func newHarness(t *testing.T, zonesJSON string) *harness {
	t.Helper()
	runner := newScriptedRunner()
	runner.responses["zones"] = zonesJSON

	h := &harness{
		t:       t,
		app:     New(),
		runner:  runner,
		handler: NewHandler(roon.NewClient(runner, zap.NewNop()), zap.NewNop()),
		disp:    NewDispatcher(),
		clock:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	h.app.SetClock(func() time.Time { return h.clock })
	return h
}

func (h *harness) startup() {
	h.handler.Refresh(context.Background(), h.app)
}

func (h *harness) press(msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		action := h.disp.Dispatch(msg, h.app)
		h.handler.Handle(context.Background(), action, h.app)
	}
}

func (h *harness) do(types ...ActionType) {
	for _, t := range types {
		h.apply(Action{Type: t})
	}
}

func (h *harness) apply(a Action) {
	h.handler.Handle(context.Background(), a, h.app)
}

func (h *harness) advance(d time.Duration) {
	h.clock = h.clock.Add(d)
}

func runeKey(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func keys(s string) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, r := range s {
		out = append(out, runeKey(r))
	}
	return out
}
