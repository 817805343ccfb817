package domain

// User represents a registered account.
//
// Password holds the bcrypt digest once the user has been persisted. It is
// part of the stored document but never part of an API response.
type User struct {
	Base     `bson:",inline"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"password" bson:"password"`
}
