package model

import "github.com/deppfellow/fitness-tracker/internal/validation"

// Member is a gym member as stored in the members table.
type Member struct {
	MemberID       int64  `json:"member_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BenchAmount    int64  `json:"bench_amount"`
	MembershipType string `json:"membership_type"`
}

// MemberInput holds the client-writable member fields. member_id is
// assigned by the store and never read from input. bench_amount is
// bounded to the INTEGER column range.
type MemberInput struct {
	Name           string `json:"name" validate:"min=1"`
	Email          string `json:"email" validate:"min=1"`
	Phone          string `json:"phone" validate:"min=1"`
	BenchAmount    int64  `json:"bench_amount" validate:"min=-2147483648,max=2147483647"`
	MembershipType string `json:"membership_type"`
}

// ParseMember reads every writable member field out of p. Either the full
// record is returned with nil errors, or the zero record with at least
// one field error.
func ParseMember(p validation.Payload) (MemberInput, validation.FieldErrors) {
	f := validation.NewFields(p)
	in := MemberInput{
		Name:           f.String("name"),
		Email:          f.String("email"),
		Phone:          f.String("phone"),
		BenchAmount:    f.Int("bench_amount"),
		MembershipType: f.String("membership_type"),
	}
	f.Check(in)

	if fe := f.Errors(); fe != nil {
		return MemberInput{}, fe
	}
	return in, nil
}
