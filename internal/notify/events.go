package notify

// TaskChangedEvent describes one mutation inside a solution. Action is
// "created", "updated" or "deleted"; DeletedIDs carries the whole
// cascaded subtree on deletes.
type TaskChangedEvent struct {
	SolutionID uint   `json:"solution_id"`
	TaskID     uint   `json:"task_id"`
	Action     string `json:"action"`
	ActorID    uint   `json:"actor_id"`
	Title      string `json:"title,omitempty"`
	DeletedIDs []uint `json:"deleted_ids,omitempty"`
}
