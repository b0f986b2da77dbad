package models

import "time"

// ReviewRecord is a persisted site review; Report holds the encoded report.
type ReviewRecord struct {
	ID        int64     `db:"id" json:"id"`
	Score     int       `db:"score" json:"score"`
	Critical  int       `db:"critical" json:"critical"`
	Report    []byte    `db:"report" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
