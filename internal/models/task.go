package models

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type Task struct {
	TaskID           int        `json:"task_id"`
	UserID           int64      `json:"user_id"`
	ProjectID        *int       `json:"project_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Priority         int        `json:"priority"` // 1-5
	Status           TaskStatus `json:"status"`
	DueDate          *time.Time `json:"due_date"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Tags             string     `json:"tags"`
	IsAutoRolled     bool       `json:"is_auto_rolled"`
	Subtasks         []*Subtask `json:"subtasks,omitempty"` // jsonb
	CreatedAt        time.Time  `json:"created_at"`
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

// Clone returns a deep copy including the subtask tree.
func (t *Task) Clone() *Task {
	c := *t
	if t.ProjectID != nil {
		id := *t.ProjectID
		c.ProjectID = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	c.Subtasks = cloneSubtasks(t.Subtasks)
	return &c
}

func cloneSubtasks(nodes []*Subtask) []*Subtask {
	if nodes == nil {
		return nil
	}
	out := make([]*Subtask, len(nodes))
	for i, n := range nodes {
		cp := *n
		cp.Children = cloneSubtasks(n.Children)
		out[i] = &cp
	}
	return out
}
