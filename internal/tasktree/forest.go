package tasktree

import (
	"sort"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

// Node is one task in the forest. Children are ids into the owning
// forest's arena, not live pointers, so the structure serializes
// cleanly and cannot form ownership cycles.
type Node struct {
	Task     model.Task `json:"task"`
	Children []uint     `json:"children"`
}

// Forest indexes a solution's tasks by id with root ordering shared
// with the timeline: start date ascending, id as tie-break.
type Forest struct {
	Nodes map[uint]*Node `json:"nodes"`
	Roots []uint         `json:"roots"`
}

// Build assembles a forest from a flat task list in O(n). A task whose
// parent id is absent from the input becomes a root instead of being
// dropped; duplicate ids keep the first occurrence. Build never follows
// parent chains, so corrupt input cannot loop it.
func Build(flat []model.Task) *Forest {
	f := &Forest{Nodes: make(map[uint]*Node, len(flat))}

	for _, t := range flat {
		if _, seen := f.Nodes[t.ID]; seen {
			continue
		}
		f.Nodes[t.ID] = &Node{Task: t}
	}

	for id, n := range f.Nodes {
		pid := n.Task.ParentTaskID
		if pid == nil || *pid == id || f.parentChainRevisits(id, *pid) {
			f.Roots = append(f.Roots, id)
			continue
		}
		parent, ok := f.Nodes[*pid]
		if !ok {
			f.Roots = append(f.Roots, id)
			continue
		}
		parent.Children = append(parent.Children, id)
	}

	f.sortLevel(f.Roots)
	for _, n := range f.Nodes {
		f.sortLevel(n.Children)
	}
	return f
}

// parentChainRevisits reports whether walking raw parent pointers from
// pid ever returns to id. The walk is bounded by the arena size, so a
// corrupt chain can never loop forever; a node on such a chain is
// placed at the root instead.
func (f *Forest) parentChainRevisits(id, pid uint) bool {
	cur := pid
	for steps := 0; steps < len(f.Nodes); steps++ {
		if cur == id {
			return true
		}
		n, ok := f.Nodes[cur]
		if !ok || n.Task.ParentTaskID == nil {
			return false
		}
		cur = *n.Task.ParentTaskID
	}
	return true
}

func (f *Forest) sortLevel(ids []uint) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := f.Nodes[ids[i]].Task, f.Nodes[ids[j]].Task
		if !a.StartDate.Equal(b.StartDate.Time) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.ID < b.ID
	})
}

// Flatten returns the tasks in depth-first order. Build(Flatten())
// reproduces the same forest.
func (f *Forest) Flatten() []model.Task {
	out := make([]model.Task, 0, len(f.Nodes))
	var walk func(ids []uint)
	walk = func(ids []uint) {
		for _, id := range ids {
			n := f.Nodes[id]
			out = append(out, n.Task)
			walk(n.Children)
		}
	}
	walk(f.Roots)
	return out
}

// Subtree returns the ids of the node and all its descendants, used for
// cascade deletes. Unknown ids yield an empty slice.
func (f *Forest) Subtree(id uint) []uint {
	n, ok := f.Nodes[id]
	if !ok {
		return nil
	}
	out := []uint{id}
	var walk func(ids []uint)
	walk = func(ids []uint) {
		for _, c := range ids {
			out = append(out, c)
			walk(f.Nodes[c].Children)
		}
	}
	walk(n.Children)
	return out
}

// Walk visits every node depth-first with its hierarchy level, roots at
// level zero. skipChildren lets the caller prune a subtree while still
// visiting the pruned node itself.
func (f *Forest) Walk(visit func(n *Node, level int) (skipChildren bool)) {
	var walk func(ids []uint, level int)
	walk = func(ids []uint, level int) {
		for _, id := range ids {
			n := f.Nodes[id]
			if !visit(n, level) {
				walk(n.Children, level+1)
			}
		}
	}
	walk(f.Roots, 0)
}
