package tasktree

import (
	"reflect"
	"testing"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

func d(s string) model.Date {
	date, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}

func uintPtr(v uint) *uint { return &v }

func mkTask(id uint, parent *uint, start string) model.Task {
	return model.Task{
		ID:           id,
		ParentTaskID: parent,
		StartDate:    d(start),
		EndDate:      d(start),
	}
}

func TestBuildOrdersRootsByStartDate(t *testing.T) {
	f := Build([]model.Task{
		mkTask(3, nil, "2026-03-20"),
		mkTask(1, nil, "2026-03-10"),
		mkTask(2, nil, "2026-03-10"),
	})

	want := []uint{1, 2, 3} // date ascending, id breaks the tie
	if !reflect.DeepEqual(f.Roots, want) {
		t.Errorf("Roots = %v, want %v", f.Roots, want)
	}
}

func TestBuildNestsChildren(t *testing.T) {
	f := Build([]model.Task{
		mkTask(1, nil, "2026-03-01"),
		mkTask(2, uintPtr(1), "2026-03-05"),
		mkTask(3, uintPtr(1), "2026-03-02"),
		mkTask(4, uintPtr(2), "2026-03-06"),
	})

	if !reflect.DeepEqual(f.Roots, []uint{1}) {
		t.Fatalf("Roots = %v, want [1]", f.Roots)
	}
	if got := f.Nodes[1].Children; !reflect.DeepEqual(got, []uint{3, 2}) {
		t.Errorf("children of 1 = %v, want [3 2]", got)
	}
	if got := f.Nodes[2].Children; !reflect.DeepEqual(got, []uint{4}) {
		t.Errorf("children of 2 = %v, want [4]", got)
	}
}

func TestBuildOrphanBecomesRoot(t *testing.T) {
	f := Build([]model.Task{
		mkTask(1, nil, "2026-03-01"),
		mkTask(2, uintPtr(99), "2026-03-05"), // parent not in input
	})

	if !reflect.DeepEqual(f.Roots, []uint{1, 2}) {
		t.Errorf("Roots = %v, want [1 2]", f.Roots)
	}
}

func TestBuildSelfParentBecomesRoot(t *testing.T) {
	f := Build([]model.Task{mkTask(1, uintPtr(1), "2026-03-01")})
	if !reflect.DeepEqual(f.Roots, []uint{1}) {
		t.Errorf("Roots = %v, want [1]", f.Roots)
	}
}

func TestBuildParentCycleBecomesRoots(t *testing.T) {
	// Corrupt input: 1 and 2 claim each other as parent. Both must end
	// up reachable from the roots rather than orphaned in a loop.
	f := Build([]model.Task{
		mkTask(1, uintPtr(2), "2026-03-01"),
		mkTask(2, uintPtr(1), "2026-03-02"),
	})

	seen := make(map[uint]bool)
	f.Walk(func(n *Node, _ int) bool {
		seen[n.Task.ID] = true
		return false
	})
	if !seen[1] || !seen[2] {
		t.Errorf("cycle members unreachable: visited %v", seen)
	}
}

func TestBuildDuplicateIDKeepsFirst(t *testing.T) {
	first := mkTask(1, nil, "2026-03-01")
	first.Title = "first"
	second := mkTask(1, nil, "2026-03-02")
	second.Title = "second"

	f := Build([]model.Task{first, second})
	if len(f.Nodes) != 1 || f.Nodes[1].Task.Title != "first" {
		t.Errorf("duplicate id not resolved to first occurrence")
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	tasks := []model.Task{
		mkTask(1, nil, "2026-03-01"),
		mkTask(2, uintPtr(1), "2026-03-02"),
		mkTask(3, uintPtr(1), "2026-03-03"),
		mkTask(4, uintPtr(2), "2026-03-02"),
		mkTask(5, nil, "2026-03-05"),
	}

	f := Build(tasks)
	flat := f.Flatten()
	if len(flat) != len(tasks) {
		t.Fatalf("Flatten returned %d tasks, want %d", len(flat), len(tasks))
	}

	again := Build(flat)
	if !reflect.DeepEqual(again.Roots, f.Roots) {
		t.Errorf("rebuild roots = %v, want %v", again.Roots, f.Roots)
	}
	for id, n := range f.Nodes {
		if !reflect.DeepEqual(again.Nodes[id].Children, n.Children) {
			t.Errorf("rebuild children of %d = %v, want %v", id, again.Nodes[id].Children, n.Children)
		}
	}
}

func TestSubtree(t *testing.T) {
	f := Build([]model.Task{
		mkTask(1, nil, "2026-03-01"),
		mkTask(2, uintPtr(1), "2026-03-02"),
		mkTask(3, uintPtr(2), "2026-03-03"),
		mkTask(4, uintPtr(1), "2026-03-04"),
		mkTask(5, nil, "2026-03-05"),
	})

	got := f.Subtree(1)
	want := []uint{1, 2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subtree(1) = %v, want %v", got, want)
	}

	if got := f.Subtree(3); !reflect.DeepEqual(got, []uint{3}) {
		t.Errorf("Subtree(3) = %v, want [3]", got)
	}
	if got := f.Subtree(99); got != nil {
		t.Errorf("Subtree(99) = %v, want nil", got)
	}
}

func TestWalkLevelsAndPruning(t *testing.T) {
	f := Build([]model.Task{
		mkTask(1, nil, "2026-03-01"),
		mkTask(2, uintPtr(1), "2026-03-02"),
		mkTask(3, uintPtr(2), "2026-03-03"),
		mkTask(4, nil, "2026-03-04"),
	})

	levels := make(map[uint]int)
	f.Walk(func(n *Node, level int) bool {
		levels[n.Task.ID] = level
		return false
	})
	want := map[uint]int{1: 0, 2: 1, 3: 2, 4: 0}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("levels = %v, want %v", levels, want)
	}

	// Pruning at 2 visits 2 itself but not 3.
	visited := make(map[uint]bool)
	f.Walk(func(n *Node, _ int) bool {
		visited[n.Task.ID] = true
		return n.Task.ID == 2
	})
	if !visited[2] || visited[3] {
		t.Errorf("pruned walk visited %v", visited)
	}
}
