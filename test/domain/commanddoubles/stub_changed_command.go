//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/monobump/internal/domain/commands"
)

// StubChangedCommand implements commands.Changed for controller tests.
type StubChangedCommand struct {
	Report           *commands.ChangedReport
	ExecuteErr       error
	ExecuteCallCount int
	LastOpts         commands.ChangedOptions
}

var _ commands.Changed = (*StubChangedCommand)(nil)

func (s *StubChangedCommand) Execute(
	_ context.Context,
	opts commands.ChangedOptions,
) (*commands.ChangedReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Report, s.ExecuteErr
}
