package social

// FollowResult reports the edge state after a follow toggle.
type FollowResult struct {
	Following bool   `json:"following"`
	Message   string `json:"message"`
}

// SuggestedLimit caps the "who to follow" list.
const SuggestedLimit = 4
