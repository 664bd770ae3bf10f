package driven

import "context"

// NoticeLevel classifies a user-facing notice.
type NoticeLevel int

const (
	// NoticeInfo reports progress, e.g. a completed floor switch.
	NoticeInfo NoticeLevel = iota

	// NoticeWarning reports a user-input inconsistency; the operation
	// was aborted but the session is unaffected.
	NoticeWarning

	// NoticeError reports an invariant violation the user should fix.
	NoticeError
)

// String returns the lower-case name of the level.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Prompter is the user confirmation interface used at the connector
// floor-switch decision point. Implementations may block until the
// user answers.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string) (bool, error)

	// Choose asks the user to pick one of options. The returned label is
	// free text and is matched by the caller; an empty answer means the
	// user cancelled.
	Choose(ctx context.Context, message string, options []string) (string, error)

	// Notify shows a notice that needs no answer.
	Notify(ctx context.Context, level NoticeLevel, message string)
}
