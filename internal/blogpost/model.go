package blogpost

import "time"

// Post is a stored blog post. UserUUID and Username record the author at
// creation time; the row is removed when the author account is deleted.
type Post struct {
	PostID    int64     `json:"post_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserUUID  string    `json:"user_uuid"`
	Username  string    `json:"user_username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInput carries the writable post fields.
type PostInput struct {
	Title   string
	Content string
}
