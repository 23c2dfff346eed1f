package models

// Feedback is a single survey response. Name and Email are copied from the
// submitter at submission time and never re-resolved.
type Feedback struct {
	ID          int64  `bson:"_id" json:"id"`
	UserID      *int64 `bson:"user_id,omitempty" json:"user_id"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	Rating      int    `bson:"rating" json:"rating"`
	Category    string `bson:"category" json:"category"`
	Message     string `bson:"message" json:"message"`
	Recommend   string `bson:"recommend" json:"recommend"`
	SubmittedAt string `bson:"submitted_at" json:"submitted_at"`
}
