package timeline

import (
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/tasktree"
)

// Options controls one layout pass. Zero window bounds mean the window
// is derived from the visible tasks; Today is the fallback anchor when
// there are none. The engine never consults an ambient clock.
type Options struct {
	Visible     map[uint]bool // nil means every task is visible
	Collapsed   map[uint]bool
	WindowStart model.Date
	WindowEnd   model.Date
	Today       model.Date
	PadDays     int
}

// Row is one horizontal band of the grid: a visible task with its
// hierarchy level and bar placement as fractions of the window width.
type Row struct {
	TaskID    uint           `json:"task_id"`
	Index     int            `json:"index"`
	Level     int            `json:"level"`
	Title     string         `json:"title"`
	Kind      model.TaskKind `json:"kind"`
	Status    model.Status   `json:"status"`
	StartDate model.Date     `json:"start_date"`
	EndDate   model.Date     `json:"end_date"`
	BarStart  float64        `json:"bar_start"`
	BarWidth  float64        `json:"bar_width"`
	Collapsed bool           `json:"collapsed"`
}

// Point is a path vertex: X as a window-width fraction, Y in row units
// where a row's center sits at index+0.5.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Arrow is one dependency edge routed as a 4-segment orthogonal path:
// out of the predecessor's right edge, vertically to a shared midline,
// across, then vertically into the dependent's left edge. Lane is the
// edge's position in the dependent's dependency list and drives the
// lateral fan-out so parallel arrows never coincide.
type Arrow struct {
	FromTask uint    `json:"from_task"`
	ToTask   uint    `json:"to_task"`
	FromRow  int     `json:"from_row"`
	ToRow    int     `json:"to_row"`
	Lane     int     `json:"lane"`
	Path     []Point `json:"path"`
}

type Layout struct {
	WindowStart model.Date `json:"window_start"`
	WindowEnd   model.Date `json:"window_end"`
	Rows        []Row      `json:"rows"`
	Arrows      []Arrow    `json:"arrows"`
	// Skipped lists tasks excluded for unusable dates; the caller
	// decides whether to surface a warning.
	Skipped []uint `json:"skipped,omitempty"`
}

const (
	outset    = 0.012 // horizontal clearance before an arrow turns
	laneStepX = 0.006
	laneStepY = 0.12
)

// Compute lays out the forest. It never fails: tasks with zero dates
// are dropped into Skipped and everything else still renders.
func Compute(forest *tasktree.Forest, opts Options) Layout {
	var out Layout

	type placed struct {
		node  *tasktree.Node
		level int
	}
	var visible []placed

	forest.Walk(func(n *tasktree.Node, level int) bool {
		collapsed := opts.Collapsed[n.Task.ID]
		if opts.Visible != nil && !opts.Visible[n.Task.ID] {
			return false // hidden node, children decide for themselves
		}
		if n.Task.StartDate.IsZero() || n.Task.EndDate.IsZero() {
			out.Skipped = append(out.Skipped, n.Task.ID)
			return collapsed
		}
		visible = append(visible, placed{node: n, level: level})
		return collapsed
	})

	ws, we := opts.WindowStart, opts.WindowEnd
	if ws.IsZero() || we.IsZero() {
		if len(visible) == 0 {
			// Single-day window anchored on the caller's today, so
			// the day count never reaches zero.
			ws, we = opts.Today, opts.Today
		} else {
			min := visible[0].node.Task.StartDate
			max := visible[0].node.Task.EndDate
			for _, p := range visible[1:] {
				if p.node.Task.StartDate.Before(min) {
					min = p.node.Task.StartDate
				}
				if p.node.Task.EndDate.After(max) {
					max = p.node.Task.EndDate
				}
			}
			ws = min.AddDays(-opts.PadDays)
			we = max.AddDays(opts.PadDays)
		}
	}
	out.WindowStart, out.WindowEnd = ws, we
	days := ws.DaysUntil(we) + 1
	if days < 1 {
		days = 1
	}

	rowOf := make(map[uint]int, len(visible))
	for i, p := range visible {
		t := p.node.Task
		start := float64(ws.DaysUntil(t.StartDate)) / float64(days)
		span := t.StartDate.DaysUntil(t.EndDate) + 1
		if span < 1 {
			span = 1
		}
		width := float64(span) / float64(days)

		start = clamp01(start)
		if start+width > 1 {
			width = 1 - start
		}
		width = clamp01(width)

		out.Rows = append(out.Rows, Row{
			TaskID:    t.ID,
			Index:     i,
			Level:     p.level,
			Title:     t.Title,
			Kind:      t.Kind,
			Status:    t.Status,
			StartDate: t.StartDate,
			EndDate:   t.EndDate,
			BarStart:  start,
			BarWidth:  width,
			Collapsed: opts.Collapsed[t.ID],
		})
		rowOf[t.ID] = i
	}

	for _, p := range visible {
		t := p.node.Task
		toRow := rowOf[t.ID]
		for lane, dep := range t.Dependencies {
			fromRow, ok := rowOf[dep.DependsOnID]
			if !ok {
				continue // predecessor hidden or skipped
			}
			out.Arrows = append(out.Arrows, route(out.Rows[fromRow], out.Rows[toRow], lane))
		}
	}

	return out
}

// route builds the 4-segment orthogonal path between two rows. The
// shared midline sits halfway between the row centers, nudged per lane
// so stacked edges fan out instead of overlapping.
func route(from, to Row, lane int) Arrow {
	srcX := clamp01(from.BarStart + from.BarWidth)
	srcY := float64(from.Index) + 0.5
	dstX := clamp01(to.BarStart)
	dstY := float64(to.Index) + 0.5

	turnX := clamp01(srcX + outset + float64(lane)*laneStepX)
	midY := (srcY + dstY) / 2
	if from.Index == to.Index {
		midY = srcY + 0.5 // same row: swing below instead of degenerating
	}
	midY += float64(lane) * laneStepY

	return Arrow{
		FromTask: from.TaskID,
		ToTask:   to.TaskID,
		FromRow:  from.Index,
		ToRow:    to.Index,
		Lane:     lane,
		Path: []Point{
			{X: srcX, Y: srcY},
			{X: turnX, Y: srcY},
			{X: turnX, Y: midY},
			{X: dstX, Y: midY},
			{X: dstX, Y: dstY},
		},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
