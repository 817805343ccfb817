package domain

// TaskList is an ordered container of tasks, optionally attached to a plan.
type TaskList struct {
	Base        `bson:",inline"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	UserID      string `json:"user_id" bson:"user_id"`
	PlanID      string `json:"plan_id,omitempty" bson:"plan_id,omitempty"`
}
