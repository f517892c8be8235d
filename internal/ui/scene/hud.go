// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/constellation/internal/ui/styles"
	"github.com/jeranaias/constellation/internal/util"
)

const hudSeparator = " · "

// segment is one styled piece of the HUD. Widths are measured on text,
// never on the styled output.
type segment struct {
	text  string
	style lipgloss.Style
}

// renderHUD renders the status line: tier, particles, links, fps, state,
// notice and session id. It always fits the terminal width.
func (m *Model) renderHUD() string {
	t := m.theme
	if m.cols < 3 {
		return ""
	}

	spinner := styles.PulseSpinner
	if m.encoder.Profile() == termenv.Ascii {
		spinner = styles.LineSpinner
	}

	segs := []segment{
		{spinner.Frame(m.pulse) + " constellation", t.Brand},
	}

	if m.sim == nil {
		segs = append(segs, segment{"field unavailable", t.NoticeError})
	} else {
		st := m.sim.Stats()
		state := m.sim.State().String()
		segs = append(segs,
			segment{st.Tier.String(), t.Badge},
			segment{fmt.Sprintf("%d particles", st.Particles), t.Value},
		)
		if m.confetti.Active() {
			segs = append(segs, segment{pluralize(m.confetti.Bursts(), "burst"), t.Value})
		}
		segs = append(segs,
			segment{fmt.Sprintf("%d links", st.Links), t.Value},
			segment{fmt.Sprintf("%.0f fps", m.meter.fps), t.Value},
			segment{state, t.StateStyle(state)},
		)
	}

	if m.notice != "" {
		style := t.Notice
		if m.noticeErr {
			style = t.NoticeError
		}
		segs = append(segs, segment{m.notice, style})
	}

	if m.sim != nil && m.theme.GetLayoutMode() != styles.LayoutNarrow {
		segs = append(segs, segment{shortID(m.sim.SessionID()), t.Session})
	}
	segs = append(segs, segment{"? help", t.Label})

	// Padding takes one cell each side.
	content := layoutSegments(segs, segment{hudSeparator, t.Separator}, m.cols-2)
	return t.HUD.Width(m.cols).MaxHeight(1).Render(content)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// layoutSegments joins segments with sep, cutting the line at width cells.
func layoutSegments(segs []segment, sep segment, width int) string {
	var sb strings.Builder
	used := 0
	sepWidth := util.StringWidth(sep.text)

	for i, s := range segs {
		if i > 0 {
			if used+sepWidth >= width {
				break
			}
			sb.WriteString(sep.style.Render(sep.text))
			used += sepWidth
		}

		room := width - used
		text := util.TruncateWidth(s.text, room)
		if text == "" {
			break
		}
		sb.WriteString(s.style.Render(text))
		used += util.StringWidth(text)
		if text != s.text {
			break
		}
	}
	return sb.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// =============================================================================
// FPS METER
// =============================================================================

// fpsMeter measures executed ticks per second over one second windows.
type fpsMeter struct {
	start time.Time
	count int
	fps   float64
}

func (f *fpsMeter) record(now time.Time) {
	if f.start.IsZero() {
		f.start = now
		return
	}
	f.count++
	if elapsed := now.Sub(f.start); elapsed >= time.Second {
		f.fps = float64(f.count) / elapsed.Seconds()
		f.start = now
		f.count = 0
	}
}
