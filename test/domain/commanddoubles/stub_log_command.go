//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/monobump/internal/domain/commands"
)

// StubLogCommand implements commands.Log for controller tests.
type StubLogCommand struct {
	Report           *commands.LogReport
	ExecuteErr       error
	ExecuteCallCount int
	LastOpts         commands.LogOptions
}

var _ commands.Log = (*StubLogCommand)(nil)

func (s *StubLogCommand) Execute(
	_ context.Context,
	opts commands.LogOptions,
) (*commands.LogReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Report, s.ExecuteErr
}
