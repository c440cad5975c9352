package runs

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollTickMsg fires one scheduled poll. It carries the poller's name and the
// generation it was scheduled under so disposed schedules can be told apart
// from live ones.
type pollTickMsg struct {
	name string
	gen  int
}

// poller schedules recurring ticks for one polled resource. Each schedule
// belongs to a generation; Dispose bumps the generation, so ticks from an
// earlier schedule that are still in flight are dropped by Owns instead of
// re-arming the loop after teardown.
type poller struct {
	name     string
	interval time.Duration
	gen      int
	active   bool
}

func newPoller(name string, interval time.Duration) *poller {
	return &poller{name: name, interval: interval}
}

// Start arms the poller and schedules the first tick.
func (p *poller) Start() tea.Cmd {
	p.active = true
	p.gen++
	return p.schedule()
}

// Next schedules the following tick. Returns nil once the poller is disposed.
func (p *poller) Next() tea.Cmd {
	if !p.active {
		return nil
	}
	return p.schedule()
}

// Owns reports whether the tick belongs to this poller's live schedule.
func (p *poller) Owns(msg pollTickMsg) bool {
	return p.active && msg.name == p.name && msg.gen == p.gen
}

// Dispose stops the poller and invalidates any tick already in flight.
func (p *poller) Dispose() {
	p.active = false
	p.gen++
}

func (p *poller) schedule() tea.Cmd {
	name, gen := p.name, p.gen
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return pollTickMsg{name: name, gen: gen}
	})
}
