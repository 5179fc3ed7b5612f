package entities

import (
	"cmp"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Directive tells the bump engine which part of a version to move.
type Directive string

const (
	DirectiveMajor Directive = "major"
	DirectiveMinor Directive = "minor"
	DirectivePatch Directive = "patch"
	DirectiveAlpha Directive = "alpha"
	DirectiveBeta  Directive = "beta"
	DirectiveRC    Directive = "rc"
)

// Channel is a prerelease track.
type Channel string

const (
	ChannelAlpha Channel = "alpha"
	ChannelBeta  Channel = "beta"
	ChannelRC    Channel = "rc"
)

// channel <-> tag prefix used in the version string
var (
	channelPrefixes = map[Channel]string{ //nolint:gochecknoglobals // lookup table
		ChannelAlpha: "a",
		ChannelBeta:  "b",
		ChannelRC:    "rc",
	}
	prefixChannels = map[string]Channel{ //nolint:gochecknoglobals // lookup table
		"a":  ChannelAlpha,
		"b":  ChannelBeta,
		"rc": ChannelRC,
	}
	channelOrder = map[Channel]int{ //nolint:gochecknoglobals // lookup table
		ChannelAlpha: 1,
		ChannelBeta:  2, //nolint:mnd // alpha < beta < rc
		ChannelRC:    3, //nolint:mnd // alpha < beta < rc
	}
)

var versionPattern = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-(a|b|rc)([1-9]\d*))?$`,
)

// Prerelease is the optional prerelease part of a version.
type Prerelease struct {
	Channel Channel
	Number  int // always >= 1
}

// ParsedVersion is a version in the restricted grammar understood by the bump engine.
// Prerelease is nil for stable versions.
type ParsedVersion struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease *Prerelease
}

// ParseDirective converts user input into a Directive.
func ParseDirective(raw string) (Directive, error) {
	directive := Directive(strings.ToLower(strings.TrimSpace(raw)))
	switch directive {
	case DirectiveMajor, DirectiveMinor, DirectivePatch,
		DirectiveAlpha, DirectiveBeta, DirectiveRC:
		return directive, nil
	default:
		return "", fmt.Errorf(
			"%w: %q (expected major, minor, patch, alpha, beta or rc)", ErrInvalidDirective, raw,
		)
	}
}

// Channel returns the prerelease channel of a prerelease directive.
func (d Directive) Channel() (Channel, bool) {
	switch d {
	case DirectiveAlpha:
		return ChannelAlpha, true
	case DirectiveBeta:
		return ChannelBeta, true
	case DirectiveRC:
		return ChannelRC, true
	default:
		return "", false
	}
}

// ParseVersion parses MAJOR.MINOR.PATCH or MAJOR.MINOR.PATCH-{a|b|rc}N.
// There is no partial recovery: anything else is ErrInvalidVersionFormat.
func ParseVersion(raw string) (ParsedVersion, error) {
	matches := versionPattern.FindStringSubmatch(raw)
	if matches == nil {
		return ParsedVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersionFormat, raw)
	}

	numbers := make([]int, 0, 4) //nolint:mnd // major, minor, patch, prerelease
	for _, group := range []string{matches[1], matches[2], matches[3], matches[5]} {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return ParsedVersion{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersionFormat, raw, err)
		}
		numbers = append(numbers, n)
	}

	parsed := ParsedVersion{Major: numbers[0], Minor: numbers[1], Patch: numbers[2]}
	if matches[4] != "" {
		parsed.Prerelease = &Prerelease{Channel: prefixChannels[matches[4]], Number: numbers[3]}
	}
	return parsed, nil
}

// IsPrerelease reports whether the version is on a prerelease channel.
func (v ParsedVersion) IsPrerelease() bool {
	return v.Prerelease != nil
}

// Compare orders two versions: major, minor and patch numerically, then a stable version
// above any prerelease of the same base, then alpha < beta < rc, then the prerelease number.
func (v ParsedVersion) Compare(other ParsedVersion) int {
	for _, pair := range [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	} {
		if order := cmp.Compare(pair[0], pair[1]); order != 0 {
			return order
		}
	}

	switch {
	case v.Prerelease == nil && other.Prerelease == nil:
		return 0
	case v.Prerelease == nil:
		return 1
	case other.Prerelease == nil:
		return -1
	}
	order := cmp.Compare(channelOrder[v.Prerelease.Channel], channelOrder[other.Prerelease.Channel])
	if order != 0 {
		return order
	}
	return cmp.Compare(v.Prerelease.Number, other.Prerelease.Number)
}

func (v ParsedVersion) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease == nil {
		return base
	}
	return fmt.Sprintf("%s-%s%d", base, channelPrefixes[v.Prerelease.Channel], v.Prerelease.Number)
}

// Bump applies a directive and returns the next version.
//
// Transitions:
//   - stable + major/minor/patch: standard increment, lower components reset
//   - prerelease + major: major+1.0.0; + minor: major.minor+1.0
//   - prerelease + patch: the prerelease suffix is dropped (graduation)
//   - stable + alpha/beta/rc: major.minor+1.0-<prefix>1
//   - prerelease + same channel: number+1
//   - prerelease + other channel: <prefix>1 on the same base, channel order is not enforced
func (v ParsedVersion) Bump(directive Directive) (ParsedVersion, error) {
	next := v
	next.Prerelease = nil

	var err error
	switch directive {
	case DirectiveMajor:
		if next.Major, err = increment(v, v.Major); err != nil {
			return ParsedVersion{}, err
		}
		next.Minor = 0
		next.Patch = 0
		return next, nil
	case DirectiveMinor:
		if next.Minor, err = increment(v, v.Minor); err != nil {
			return ParsedVersion{}, err
		}
		next.Patch = 0
		return next, nil
	case DirectivePatch:
		if !v.IsPrerelease() {
			if next.Patch, err = increment(v, v.Patch); err != nil {
				return ParsedVersion{}, err
			}
		}
		return next, nil
	case DirectiveAlpha, DirectiveBeta, DirectiveRC:
		channel, _ := directive.Channel()
		if !v.IsPrerelease() {
			if next.Minor, err = increment(v, v.Minor); err != nil {
				return ParsedVersion{}, err
			}
			next.Patch = 0
			next.Prerelease = &Prerelease{Channel: channel, Number: 1}
			return next, nil
		}
		if v.Prerelease.Channel == channel {
			number, incErr := increment(v, v.Prerelease.Number)
			if incErr != nil {
				return ParsedVersion{}, incErr
			}
			next.Prerelease = &Prerelease{Channel: channel, Number: number}
			return next, nil
		}
		next.Prerelease = &Prerelease{Channel: channel, Number: 1}
		return next, nil
	default:
		return ParsedVersion{}, fmt.Errorf("%w: %q", ErrInvalidDirective, directive)
	}
}

// increment refuses to wrap a component that already holds math.MaxInt.
func increment(v ParsedVersion, n int) (int, error) {
	if n == math.MaxInt {
		return 0, fmt.Errorf("%w: %q: component overflows", ErrInvalidVersionFormat, v.String())
	}
	return n + 1, nil
}

// BumpVersion parses a version string, applies the directive and formats the result.
func BumpVersion(version string, directive Directive) (string, error) {
	parsed, err := ParseVersion(version)
	if err != nil {
		return "", err
	}
	next, err := parsed.Bump(directive)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}
