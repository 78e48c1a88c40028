package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const (
	fadeFPS      = 60
	fadeInTime   = 300 * time.Millisecond
	fadeOutTime  = 200 * time.Millisecond
	fadeInFreq   = 18.0
	fadeOutFreq  = 24.0
	fadeDamping  = 1.0
	fadeSnapDist = 0.01
)

type fadeFrameMsg struct {
	id int
	at time.Time
}

// fade eases an opacity between 0 and 1 with a spring, and snaps to the
// target once its time box runs out.
type fade struct {
	id       int
	value    float64
	velocity float64
	target   float64
	start    time.Time
	duration time.Duration
	spring   harmonica.Spring
	active   bool
}

func (f *fade) in(now time.Time) tea.Cmd {
	return f.run(now, 1, fadeInTime, fadeInFreq)
}

func (f *fade) out(now time.Time) tea.Cmd {
	return f.run(now, 0, fadeOutTime, fadeOutFreq)
}

func (f *fade) run(now time.Time, target float64, d time.Duration, freq float64) tea.Cmd {
	f.id++
	f.target = target
	f.start = now
	f.duration = d
	f.velocity = 0
	f.spring = harmonica.NewSpring(harmonica.FPS(fadeFPS), freq, fadeDamping)
	f.active = true
	return f.frame()
}

func (f *fade) frame() tea.Cmd {
	id := f.id
	return tea.Tick(time.Second/fadeFPS, func(t time.Time) tea.Msg {
		return fadeFrameMsg{id: id, at: t}
	})
}

// step advances one frame. Frames from a superseded fade are dropped.
func (f *fade) step(msg fadeFrameMsg) tea.Cmd {
	if !f.active || msg.id != f.id {
		return nil
	}
	f.value, f.velocity = f.spring.Update(f.value, f.velocity, f.target)
	if msg.at.Sub(f.start) >= f.duration || abs(f.value-f.target) < fadeSnapDist {
		f.finish()
		return nil
	}
	return f.frame()
}

func (f *fade) finish() {
	f.value = f.target
	f.velocity = 0
	f.active = false
}

func (f fade) opacity() float64 {
	switch {
	case f.value < 0:
		return 0
	case f.value > 1:
		return 1
	}
	return f.value
}

// leaving reports an exit fade that is still on screen.
func (f fade) leaving() bool {
	return f.active && f.target == 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
