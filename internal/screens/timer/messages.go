package timer

import "github.com/abhisek/focusflow/internal/screen"

// phaseRecordedMsg reports the result of writing a completed phase to the
// history store. It is broadcast so the timer sees it under other screens.
type phaseRecordedMsg struct {
	screen.Broadcast
	Err error
}
