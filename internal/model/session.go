package model

import "github.com/deppfellow/fitness-tracker/internal/validation"

// Session is a workout session ("dank sesh") as stored in the dank_sesh
// table.
type Session struct {
	SeshID      int64  `json:"sesh_id"`
	MemberID    int64  `json:"member_id"`
	Date        Date   `json:"date"`
	WorkoutType string `json:"workout_type"`
}

// SessionInput holds the client-writable session fields. sesh_id is
// assigned by the store and never read from input. MemberID is not
// checked against existing members here; the foreign key does that.
type SessionInput struct {
	MemberID    int64  `json:"member_id"`
	Date        Date   `json:"date"`
	WorkoutType string `json:"workout_type" validate:"min=1"`
}

// ParseSession reads every writable session field out of p.
func ParseSession(p validation.Payload) (SessionInput, validation.FieldErrors) {
	f := validation.NewFields(p)
	in := SessionInput{
		MemberID:    f.Int("member_id"),
		Date:        Date{f.Date("date")},
		WorkoutType: f.String("workout_type"),
	}
	f.Check(in)

	if fe := f.Errors(); fe != nil {
		return SessionInput{}, fe
	}
	return in, nil
}
