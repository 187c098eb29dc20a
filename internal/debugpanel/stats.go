package debugpanel

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/scrollscene/internal/showcase"
)

// memEvery is how often, in seconds, heap usage is re-read.
const memEvery = 1.0

// FrameMeter smooths frame timing for the stats overlay.
type FrameMeter struct {
	FPS     float64
	FrameMS float64
	HeapMB  float64

	alpha    float64
	sinceMem float64
	primed   bool

	// readMem is swapped in tests.
	readMem func() uint64
}

// NewFrameMeter creates a meter with exponential smoothing factor alpha.
func NewFrameMeter(alpha float64) *FrameMeter {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.1
	}
	return &FrameMeter{alpha: alpha, sinceMem: memEvery, readMem: heapAlloc}
}

func heapAlloc() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}

// Tick records one frame of dt seconds.
func (m *FrameMeter) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	ms := dt * 1000
	if !m.primed {
		m.FrameMS = ms
		m.primed = true
	} else {
		m.FrameMS += (ms - m.FrameMS) * m.alpha
	}
	m.FPS = 1000 / m.FrameMS

	m.sinceMem += dt
	if m.sinceMem >= memEvery {
		m.sinceMem = 0
		m.HeapMB = float64(m.readMem()) / (1 << 20)
	}
}

// StatsLines formats the overlay text.
func StatsLines(m *FrameMeter, st showcase.Stats, current, pending showcase.Section) []string {
	section := string(current)
	if section == "" {
		section = "-"
	}
	lines := []string{
		fmt.Sprintf("fps %.0f  %.1f ms", m.FPS, m.FrameMS),
		fmt.Sprintf("section %s", section),
	}
	if pending != "" {
		lines = append(lines, fmt.Sprintf("pending %s", pending))
	}
	lines = append(lines,
		fmt.Sprintf("frames %d drawn %d skipped %d halts %d", st.Frames, st.Drawn, st.Skipped, st.Halts),
		fmt.Sprintf("heap %.1f MB", m.HeapMB),
	)
	if st.Open {
		lines = append(lines, "render halted")
	} else if st.Consecutive > 0 {
		lines = append(lines, fmt.Sprintf("failing x%d", st.Consecutive))
	}
	return lines
}
