package repositories

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/monobump/internal/domain/entities"
	domainRepos "github.com/rios0rios0/monobump/internal/domain/repositories"
)

// WorkspaceRegistry manages all registered workspace tool implementations.
// Detection tries them in registration order.
type WorkspaceRegistry struct {
	workspaces []domainRepos.WorkspaceRepository
}

// NewWorkspaceRegistry creates an empty workspace registry.
func NewWorkspaceRegistry() *WorkspaceRegistry {
	return &WorkspaceRegistry{}
}

// Register adds a workspace tool; a tool with the same name is replaced.
func (r *WorkspaceRegistry) Register(w domainRepos.WorkspaceRepository) {
	for i, existing := range r.workspaces {
		if existing.Name() == w.Name() {
			r.workspaces[i] = w
			return
		}
	}
	r.workspaces = append(r.workspaces, w)
}

// Get returns the workspace tool with the given name, or nil if not registered.
func (r *WorkspaceRegistry) Get(name string) domainRepos.WorkspaceRepository {
	for _, w := range r.workspaces {
		if w.Name() == name {
			return w
		}
	}
	return nil
}

// All returns every registered workspace tool.
func (r *WorkspaceRegistry) All() []domainRepos.WorkspaceRepository {
	return append([]domainRepos.WorkspaceRepository(nil), r.workspaces...)
}

// Names returns the list of registered workspace tool names.
func (r *WorkspaceRegistry) Names() []string {
	names := make([]string, 0, len(r.workspaces))
	for _, w := range r.workspaces {
		names = append(names, w.Name())
	}
	return names
}

// Resolve returns the forced tool when name is set, otherwise the first one whose
// Detect accepts root.
func (r *WorkspaceRegistry) Resolve(root, name string) (domainRepos.WorkspaceRepository, error) {
	if name != "" {
		if w := r.Get(name); w != nil {
			return w, nil
		}
		return nil, fmt.Errorf(
			"unknown workspace tool %q (supported: %s)", name, strings.Join(r.Names(), ", "),
		)
	}

	for _, w := range r.workspaces {
		if w.Detect(root) {
			return w, nil
		}
	}
	return nil, fmt.Errorf(
		"%w in %s (supported: %s)", entities.ErrNoWorkspace, root, strings.Join(r.Names(), ", "),
	)
}
