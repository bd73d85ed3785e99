package models

import "time"

// Comment is post-rental feedback. AuthorName is populated from the users
// table on read.
type Comment struct {
	ID         int64     `db:"id"`
	Text       string    `db:"text"`
	ItemID     int64     `db:"item_id"`
	AuthorID   int64     `db:"author_id"`
	AuthorName string    `db:"author_name"`
	Created    time.Time `db:"created"`
}

type CommentInput struct {
	Text string `json:"text"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    LocalTime `json:"created"`
}

func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    NewLocalTime(c.Created),
	}
}
