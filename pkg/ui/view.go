package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell classes for a lane row, grouped into styled runs when rendered.
const (
	cellEmpty = iota
	cellGrid
	cellGridMajor
	cellEvent
)

func (m Model) render() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.renderGridLabels())
	b.WriteByte('\n')
	b.WriteString(m.renderLanes())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	ctx := m.frame.Grid.Context
	left := contextStyle.Render(fmt.Sprintf("%s · %s · %s", ctx.Year, ctx.MonthDay, ctx.Weekday))
	right := scaleStyle.Render(fmt.Sprintf("%d events · lod %d", len(m.frame.Events), m.frame.State.LODLevel))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderGridLabels lays gridline labels into a single row at their pixel
// columns. The scheduler already guarantees 15px of separation, which is
// comfortably more than any label we draw here.
func (m Model) renderGridLabels() string {
	row := make([]rune, m.width)
	for i := range row {
		row[i] = ' '
	}
	for _, ln := range m.frame.Grid.Lines {
		label := ln.Label
		w := runewidth.StringWidth(label)
		start := int(ln.X) - w/2
		if start < 0 {
			start = 0
		}
		if start+w > m.width {
			start = m.width - w
		}
		if start < 0 {
			continue
		}
		copy(row[start:], []rune(label))
	}
	return gridLabelStyle.Render(string(row))
}

func (m Model) renderLanes() string {
	laneCount := len(m.cfg.Lanes)
	if laneCount == 0 {
		laneCount = 1
	}

	// Column classes per lane row: gridlines first, instances on top.
	rows := make([][]int, laneCount)
	for i := range rows {
		rows[i] = make([]int, m.width)
		for _, ln := range m.frame.Grid.Lines {
			x := int(ln.X)
			if x < 0 || x >= m.width {
				continue
			}
			if ln.IsMajor {
				rows[i][x] = cellGridMajor
			} else if rows[i][x] == cellEmpty {
				rows[i][x] = cellGrid
			}
		}
	}

	buf := m.frame.Instances
	for i := 0; i < buf.Count(); i++ {
		cx, cy, w, _, _, _, _, _ := buf.Instance(i)
		lane := int(cy) // LaneHeight 1, gap 0: row index is floor(centerY)
		if lane < 0 || lane >= laneCount {
			continue
		}
		x0 := int(cx - w/2)
		x1 := int(cx + w/2)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		for x := x0; x < x1; x++ {
			if x >= 0 && x < m.width {
				rows[lane][x] = cellEvent
			}
		}
	}

	var b strings.Builder
	for lane, cells := range rows {
		b.WriteString(m.renderLaneRow(lane, cells))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderLaneRow groups cells into same-class runs and styles each run once.
func (m Model) renderLaneRow(lane int, cells []int) string {
	eventStyle := lipgloss.NewStyle()
	if lane < len(m.cfg.Lanes) {
		eventStyle = eventStyle.Foreground(lipgloss.Color(m.cfg.Lanes[lane].Color))
	}

	var b strings.Builder
	runStart := 0
	for x := 1; x <= len(cells); x++ {
		if x < len(cells) && cells[x] == cells[runStart] {
			continue
		}
		n := x - runStart
		switch cells[runStart] {
		case cellEvent:
			b.WriteString(eventStyle.Render(strings.Repeat("█", n)))
		case cellGridMajor:
			b.WriteString(gridMajorStyle.Render(strings.Repeat("│", n)))
		case cellGrid:
			b.WriteString(gridLineStyle.Render(strings.Repeat("┊", n)))
		default:
			b.WriteString(strings.Repeat(" ", n))
		}
		runStart = x
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}
	status := m.status
	if m.lastErr != nil {
		return errorStyle.Render("error: " + m.lastErr.Error())
	}
	line := m.help.ShortHelpView(m.keys.ShortHelp())
	if status != "" {
		line = statusStyle.Render(status) + "  " + line
	}
	return line
}
