package domain

// PublishResult is the terminal value of a synchronization run.
type PublishResult int

// Possible run outcomes.
const (
	// ResultNoChange means the rendered content matched the remote
	// store; nothing was committed or pushed.
	ResultNoChange PublishResult = iota
	// ResultInitialized means the remote store did not exist and was
	// created with the initial content.
	ResultInitialized
	// ResultUpdated means the existing remote store received a new
	// commit.
	ResultUpdated
)

// String returns a human-readable form of the result.
func (r PublishResult) String() string {
	switch r {
	case ResultInitialized:
		return "initialized"
	case ResultUpdated:
		return "updated"
	case ResultNoChange:
		return "no change"
	default:
		return "unknown"
	}
}
