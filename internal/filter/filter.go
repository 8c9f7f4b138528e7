// Package filter compiles repository filter entries of the form
// [[group:]artifact:]version into matchers.
//
// Each segment is a wildcard pattern where '?' matches exactly one character
// and '*' matches any run of characters. Every other character, including '.',
// is matched literally and the whole value must match.
//
//	1.0                          version 1.0 of every artifact
//	com.example:lib:1.0-SNAPSHOT one version of one artifact
//	com.example.*:*:1.*          all 1.x versions below com.example.
package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidFilter is returned for entries that do not follow the
// [[group:]artifact:]version syntax.
var ErrInvalidFilter = errors.New("filter syntax [[<group>:]<artifact>:]<version> not matched")

// Filter matches (group, artifact, version) coordinates.
// Group and artifact are nil when the entry did not name them.
type Filter struct {
	source   string
	group    *regexp.Regexp
	artifact *regexp.Regexp
	version  *regexp.Regexp
}

// Compile parses a single filter entry.
func Compile(entry string) (Filter, error) {
	if entry == "" {
		return Filter{}, fmt.Errorf("%w: empty entry", ErrInvalidFilter)
	}

	segments := strings.Split(entry, ":")
	compiled := make([]*regexp.Regexp, 0, len(segments))
	if len(segments) > 3 {
		return Filter{}, fmt.Errorf("%w: %q has %d segments", ErrInvalidFilter, entry, len(segments))
	}
	for _, segment := range segments {
		re, err := compileWildcard(segment)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %q: %v", ErrInvalidFilter, entry, err)
		}
		compiled = append(compiled, re)
	}

	f := Filter{source: entry}
	switch len(compiled) {
	case 1:
		f.version = compiled[0]
	case 2:
		f.artifact = compiled[0]
		f.version = compiled[1]
	case 3:
		f.group = compiled[0]
		f.artifact = compiled[1]
		f.version = compiled[2]
	}
	return f, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level defaults.
func MustCompile(entry string) Filter {
	f, err := Compile(entry)
	if err != nil {
		panic(err)
	}
	return f
}

// compileWildcard translates a wildcard segment into an anchored expression.
func compileWildcard(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`^(?s:`)
	for _, r := range pattern {
		switch r {
		case '?':
			b.WriteString(".")
		case '*':
			b.WriteString(".*")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`)$`)
	return regexp.Compile(b.String())
}

// Matches reports whether the coordinates satisfy the filter. A filter without
// an artifact pattern accepts any artifact and group; one without a group
// pattern accepts any group.
func (f Filter) Matches(group, artifact, version string) bool {
	if f.version == nil || !f.version.MatchString(version) {
		return false
	}
	if f.artifact == nil {
		return true
	}
	if !f.artifact.MatchString(artifact) {
		return false
	}
	if f.group == nil {
		return true
	}
	return f.group.MatchString(group)
}

// String returns the entry the filter was compiled from.
func (f Filter) String() string {
	return f.source
}

// List is an ordered set of filters.
type List []Filter

// CompileAll compiles every entry, failing on the first malformed one.
func CompileAll(entries []string) (List, error) {
	list := make(List, 0, len(entries))
	for i, entry := range entries {
		f, err := Compile(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		list = append(list, f)
	}
	return list, nil
}

// MatchAny reports whether any filter in the list matches.
func (l List) MatchAny(group, artifact, version string) bool {
	for _, f := range l {
		if f.Matches(group, artifact, version) {
			return true
		}
	}
	return false
}

// Strings returns the source entries of the list.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, f := range l {
		out[i] = f.source
	}
	return out
}
