//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/monobump/internal/domain/commands"
	"github.com/rios0rios0/monobump/internal/domain/entities"
)

// StubBumpCommand implements commands.Bump for controller tests.
type StubBumpCommand struct {
	Results          []entities.BumpResult
	ExecuteErr       error
	ExecuteCallCount int
	LastOpts         commands.BumpOptions
}

var _ commands.Bump = (*StubBumpCommand)(nil)

func (s *StubBumpCommand) Execute(
	_ context.Context,
	opts commands.BumpOptions,
) ([]entities.BumpResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Results, s.ExecuteErr
}
