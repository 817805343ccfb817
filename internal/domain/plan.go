package domain

// Plan groups task lists under a title for a user.
type Plan struct {
	Base        `bson:",inline"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	UserID      string `json:"user_id" bson:"user_id"`
}
