package entities

import (
	"fmt"
	"strings"
)

// ReasonKind identifies why a package was selected for a bump.
type ReasonKind string

const (
	ReasonChanged        ReasonKind = "changed"
	ReasonSpecified      ReasonKind = "specified"
	ReasonDependencyOf   ReasonKind = "dependency-of"
	ReasonDependsOnChain ReasonKind = "depends-on-chain"
)

// BumpReason is the structured provenance of a bump. Only the fields matching
// Kind are set: Requester for ReasonDependencyOf, Chain for ReasonDependsOnChain.
type BumpReason struct {
	Kind      ReasonKind
	Requester string
	// Chain starts at the dependency that triggered the bump and ends at the changed root.
	Chain []string
}

// Changed builds the reason for a package with its own modifications.
func Changed() BumpReason {
	return BumpReason{Kind: ReasonChanged}
}

// Specified builds the reason for a package requested explicitly.
func Specified() BumpReason {
	return BumpReason{Kind: ReasonSpecified}
}

// DependencyOf builds the reason for a changed dependency pulled in by requester.
func DependencyOf(requester string) BumpReason {
	return BumpReason{Kind: ReasonDependencyOf, Requester: requester}
}

// DependsOnChain builds the reason for a dependent bumped through a chain of dependencies.
func DependsOnChain(chain []string) BumpReason {
	return BumpReason{Kind: ReasonDependsOnChain, Chain: append([]string(nil), chain...)}
}

// Root returns the changed package at the end of a chain, or "" for other kinds.
func (r BumpReason) Root() string {
	if r.Kind != ReasonDependsOnChain || len(r.Chain) == 0 {
		return ""
	}
	return r.Chain[len(r.Chain)-1]
}

func (r BumpReason) String() string {
	switch r.Kind {
	case ReasonChanged:
		return "changed"
	case ReasonSpecified:
		return "specified"
	case ReasonDependencyOf:
		return fmt.Sprintf("dependency of %s", r.Requester)
	case ReasonDependsOnChain:
		return fmt.Sprintf("depends on %s", strings.Join(r.Chain, " -> "))
	default:
		return string(r.Kind)
	}
}
