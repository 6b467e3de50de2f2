package models

import "time"

// Rating is a row of mdb.rating.
type Rating struct {
	UserID     int       `db:"uconst" json:"userId"`
	TitleID    string    `db:"tconst" json:"titleId"`
	Rating     int       `db:"rating" json:"rating"`
	ReviewText *string   `db:"review_text" json:"reviewText,omitempty"`
	Time       time.Time `db:"time" json:"time"`
}
