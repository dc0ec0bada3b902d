package domain

// Team is a group of members sharing cumulative points and a solved set.
// Membership and registration are managed out-of-band; this engine only ever
// mutates Points and Solved, and only through the credit operation.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Points  int      `json:"points"`
	Solved  []string `json:"solved"`
}

// HasSolved reports whether the team has already been credited for the
// question.
func (t *Team) HasSolved(questionID string) bool {
	for _, id := range t.Solved {
		if id == questionID {
			return true
		}
	}
	return false
}

// HasMember reports whether the member belongs to this team.
func (t *Team) HasMember(memberID string) bool {
	for _, id := range t.Members {
		if id == memberID {
			return true
		}
	}
	return false
}
