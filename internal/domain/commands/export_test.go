package commands

import "time"

// WithClock replaces the clock used to date changelog sections.
func (it *BumpCommand) WithClock(now func() time.Time) *BumpCommand {
	it.now = now
	return it
}
