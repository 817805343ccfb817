package domain

import "time"

// Priority ranks a task. Only the declared constants are valid.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the declared priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the workflow state of a task.
type Status string

const (
	StatusToDo       Status = "TO_DO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Task is a unit of work inside a task list.
type Task struct {
	Base        `bson:",inline"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	TaskListID  string    `json:"task_list_id" bson:"task_list_id"`
	DueDate     time.Time `json:"due_date" bson:"due_date"`
	Priority    Priority  `json:"priority" bson:"priority"`
	Status      Status    `json:"status" bson:"status"`
}
