package timeline

import (
	"math"
	"testing"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/tasktree"
)

func d(s string) model.Date {
	date, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}

func uintPtr(v uint) *uint { return &v }

func mkTask(id uint, parent *uint, start, end string, deps ...uint) model.Task {
	t := model.Task{
		ID:           id,
		ParentTaskID: parent,
		StartDate:    d(start),
		EndDate:      d(end),
	}
	for i, dep := range deps {
		t.Dependencies = append(t.Dependencies, model.TaskDependency{
			TaskID:      id,
			DependsOnID: dep,
			Position:    i,
		})
	}
	return t
}

func rowByTask(l Layout, id uint) *Row {
	for i := range l.Rows {
		if l.Rows[i].TaskID == id {
			return &l.Rows[i]
		}
	}
	return nil
}

func TestComputeRowsAndFractions(t *testing.T) {
	forest := tasktree.Build([]model.Task{
		mkTask(1, nil, "2026-03-01", "2026-03-10"),
		mkTask(2, uintPtr(1), "2026-03-01", "2026-03-05"),
		mkTask(3, uintPtr(1), "2026-03-06", "2026-03-10"),
	})

	l := Compute(forest, Options{
		WindowStart: d("2026-03-01"),
		WindowEnd:   d("2026-03-10"),
	})

	if len(l.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(l.Rows))
	}

	// Row indices are dense and unique.
	for i, r := range l.Rows {
		if r.Index != i {
			t.Errorf("row %d has index %d", i, r.Index)
		}
	}

	// 10-day window: task 2 covers days 0..4, half the width.
	r2 := rowByTask(l, 2)
	if r2 == nil {
		t.Fatal("task 2 missing from rows")
	}
	if r2.BarStart != 0 {
		t.Errorf("task 2 BarStart = %v, want 0", r2.BarStart)
	}
	if math.Abs(r2.BarWidth-0.5) > 1e-9 {
		t.Errorf("task 2 BarWidth = %v, want 0.5", r2.BarWidth)
	}

	// Task 3 starts on day 5.
	r3 := rowByTask(l, 3)
	if math.Abs(r3.BarStart-0.5) > 1e-9 {
		t.Errorf("task 3 BarStart = %v, want 0.5", r3.BarStart)
	}

	// Hierarchy levels carried through.
	if r1 := rowByTask(l, 1); r1.Level != 0 {
		t.Errorf("task 1 level = %d, want 0", r1.Level)
	}
	if r2.Level != 1 {
		t.Errorf("task 2 level = %d, want 1", r2.Level)
	}
}

func TestComputeFractionsClamped(t *testing.T) {
	forest := tasktree.Build([]model.Task{
		mkTask(1, nil, "2026-02-01", "2026-04-30"), // overflows the window on both ends
	})

	l := Compute(forest, Options{
		WindowStart: d("2026-03-01"),
		WindowEnd:   d("2026-03-10"),
	})

	r := rowByTask(l, 1)
	if r.BarStart < 0 || r.BarStart > 1 {
		t.Errorf("BarStart %v outside [0,1]", r.BarStart)
	}
	if r.BarWidth < 0 || r.BarStart+r.BarWidth > 1+1e-9 {
		t.Errorf("bar %v+%v overflows the window", r.BarStart, r.BarWidth)
	}
}

func TestComputeDerivedWindowPadding(t *testing.T) {
	forest := tasktree.Build([]model.Task{
		mkTask(1, nil, "2026-03-10", "2026-03-20"),
	})

	l := Compute(forest, Options{PadDays: 3})
	if l.WindowStart.String() != "2026-03-07" {
		t.Errorf("WindowStart = %s, want 2026-03-07", l.WindowStart)
	}
	if l.WindowEnd.String() != "2026-03-23" {
		t.Errorf("WindowEnd = %s, want 2026-03-23", l.WindowEnd)
	}
}

func TestComputeEmptyForestAnchorsOnToday(t *testing.T) {
	forest := tasktree.Build(nil)

	l := Compute(forest, Options{Today: d("2026-05-01"), PadDays: 3})
	if l.WindowStart.String() != "2026-05-01" || l.WindowEnd.String() != "2026-05-01" {
		t.Errorf("window = %s..%s, want the single day 2026-05-01", l.WindowStart, l.WindowEnd)
	}
	if len(l.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(l.Rows))
	}
}

func TestComputeCollapsedPrunesSubtree(t *testing.T) {
	forest := tasktree.Build([]model.Task{
		mkTask(1, nil, "2026-03-01", "2026-03-10"),
		mkTask(2, uintPtr(1), "2026-03-01", "2026-03-05"),
		mkTask(3, uintPtr(2), "2026-03-02", "2026-03-03"),
		mkTask(4, nil, "2026-03-06", "2026-03-10"),
	})

	l := Compute(forest, Options{
		Collapsed:   map[uint]bool{2: true},
		WindowStart: d("2026-03-01"),
		WindowEnd:   d("2026-03-10"),
	})

	if rowByTask(l, 2) == nil {
		t.Error("collapsed task should still have a row")
	}
	if rowByTask(l, 3) != nil {
		t.Error("descendant of collapsed task should be hidden")
	}
	if r := rowByTask(l, 2); !r.Collapsed {
		t.Error("collapsed row should be flagged")
	}
	if rowByTask(l, 4) == nil {
		t.Error("sibling subtree must not be affected")
	}
}

func TestComputeSkipsZeroDates(t *testing.T) {
	broken := model.Task{ID: 2, ParentTaskID: uintPtr(1)}
	forest := tasktree.Build([]model.Task{
		mkTask(1, nil, "2026-03-01", "2026-03-10"),
		broken,
		mkTask(3, uintPtr(2), "2026-03-02", "2026-03-03"),
	})

	l := Compute(forest, Options{
		WindowStart: d("2026-03-01"),
		WindowEnd:   d("2026-03-10"),
	})

	if len(l.Skipped) != 1 || l.Skipped[0] != 2 {
		t.Errorf("Skipped = %v, want [2]", l.Skipped)
	}
	if rowByTask(l, 2) != nil {
		t.Error("skipped task must not get a row")
	}
	// Children of a skipped task still render.
	if rowByTask(l, 3) == nil {
		t.Error("child of skipped task should still render")
	}
}

func TestComputeArrows(t *testing.T) {
	forest := tasktree.Build([]model.Task{
		mkTask(1, nil, "2026-03-01", "2026-03-04"),
		mkTask(2, nil, "2026-03-02", "2026-03-05"),
		mkTask(3, nil, "2026-03-06", "2026-03-10", 1, 2),
	})

	l := Compute(forest, Options{
		WindowStart: d("2026-03-01"),
		WindowEnd:   d("2026-03-10"),
	})

	if len(l.Arrows) != 2 {
		t.Fatalf("got %d arrows, want 2", len(l.Arrows))
	}

	for _, a := range l.Arrows {
		if a.ToTask != 3 {
			t.Errorf("arrow targets task %d, want 3", a.ToTask)
		}
		if len(a.Path) != 5 {
			t.Errorf("arrow path has %d points, want 5", len(a.Path))
		}
		// Orthogonal: consecutive points share an X or a Y.
		for i := 1; i < len(a.Path); i++ {
			p, q := a.Path[i-1], a.Path[i]
			if p.X != q.X && p.Y != q.Y {
				t.Errorf("segment %d-%d is diagonal: %+v -> %+v", i-1, i, p, q)
			}
		}
		// Endpoints touch the bars' row centers.
		if a.Path[0].Y != float64(a.FromRow)+0.5 {
			t.Errorf("path starts at y=%v, want row center %v", a.Path[0].Y, float64(a.FromRow)+0.5)
		}
		if a.Path[4].Y != float64(a.ToRow)+0.5 {
			t.Errorf("path ends at y=%v, want row center %v", a.Path[4].Y, float64(a.ToRow)+0.5)
		}
	}

	// Parallel edges into the same task take distinct lanes.
	if l.Arrows[0].Lane == l.Arrows[1].Lane {
		t.Error("parallel arrows share a lane")
	}
}

func TestComputeArrowToHiddenPredecessorDropped(t *testing.T) {
	forest := tasktree.Build([]model.Task{
		mkTask(1, nil, "2026-03-01", "2026-03-04"),
		mkTask(2, nil, "2026-03-06", "2026-03-10", 1),
	})

	l := Compute(forest, Options{
		Visible:     map[uint]bool{2: true},
		WindowStart: d("2026-03-01"),
		WindowEnd:   d("2026-03-10"),
	})

	if len(l.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(l.Rows))
	}
	if len(l.Arrows) != 0 {
		t.Errorf("got %d arrows, want 0 when the predecessor is hidden", len(l.Arrows))
	}
}
