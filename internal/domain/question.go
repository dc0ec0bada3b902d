package domain

import (
	"time"

	"mirage-api/pkg/geo"
)

// QuestionIDLength is the fixed length of question identifiers in the
// external protocol.
const QuestionIDLength = 20

// Question is a geolocated puzzle. Coordinates, answer and hint are
// immutable after authoring; Points decays in the store as teams solve the
// question, so the value held here is only a snapshot.
type Question struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Prompt   string         `json:"question"`
	Answer   string         `json:"-"`
	Hint     string         `json:"-"`
	Location geo.Coordinate `json:"location"`
	Geohash  string         `json:"-"`
	Points   int            `json:"-"`
}

// SolveRecord is one entry in a question's audit trail.
type SolveRecord struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"team_id"`
	TeamName string    `json:"team_name"`
	Points   int       `json:"points"`
	SolvedAt time.Time `json:"solved_at"`
}

// Target is the discovery view of a question. It deliberately carries no
// answer, hint or point value.
type Target struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Prompt string  `json:"question"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}
