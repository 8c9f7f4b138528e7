// Package version orders artifact version strings the way Maven does.
//
// A version is split into numeric and qualifier tokens at '.', '-' and at every
// transition between digits and letters. A '-' or a digit/letter transition
// opens a nested list, so "1.0-rc1" parses as [1, [rc, [1]]]. Trailing neutral
// tokens (0, "", "final", "ga", "release") are dropped, which makes "1.0" and
// "1.0.0" equal.
//
// Qualifiers rank as
//
//	alpha < beta < milestone < rc (cr) < snapshot < <unknown> < release < sp
//
// where unknown qualifiers compare lexically among themselves.
package version

import (
	"cmp"
	"slices"
	"strings"
)

// Version is a parsed version string.
type Version struct {
	raw   string
	items *listItem
}

// Parse tokenizes a version string. Parsing never fails; any string is a
// valid version.
func Parse(raw string) Version {
	v := strings.ToLower(raw)
	root := &listItem{}
	list := root
	stack := []*listItem{root}
	push := func() {
		next := &listItem{}
		list.add(next)
		list = next
		stack = append(stack, next)
	}

	isDigit := false
	start := 0
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '.':
			if i == start {
				list.add(intItem(""))
			} else {
				list.add(parseItem(isDigit, v[start:i]))
			}
			start = i + 1
		case c == '-':
			if i == start {
				list.add(intItem(""))
			} else {
				list.add(parseItem(isDigit, v[start:i]))
			}
			start = i + 1
			push()
		case c >= '0' && c <= '9':
			if !isDigit && i > start {
				list.add(newStringItem(v[start:i], true))
				start = i
				push()
			}
			isDigit = true
		default:
			if isDigit && i > start {
				list.add(parseItem(true, v[start:i]))
				start = i
				push()
			}
			isDigit = false
		}
	}
	if len(v) > start {
		list.add(parseItem(isDigit, v[start:]))
	}

	for i := len(stack) - 1; i >= 0; i-- {
		stack[i].normalize()
	}
	return Version{raw: raw, items: root}
}

// Compare returns -1, 0 or +1 when v is older than, equal to or newer than
// other.
func (v Version) Compare(other Version) int {
	left, right := v.items, other.items
	if left == nil {
		left = &listItem{}
	}
	if right == nil {
		right = &listItem{}
	}
	return sign(left.compareTo(right))
}

// String returns the version as it was given to Parse.
func (v Version) String() string {
	return v.raw
}

// Canonical returns the normalized token form, e.g. "1-rc-1" for "1.0-RC1".
func (v Version) Canonical() string {
	if v.items == nil {
		return ""
	}
	return v.items.String()
}

// Compare parses both strings and compares them.
func Compare(a, b string) int {
	return Parse(a).Compare(Parse(b))
}

// SortDescending orders items newest first by the version returned from
// name. Items with equal versions keep their relative order.
func SortDescending[T any](items []T, name func(T) string) {
	type keyed struct {
		item    T
		version Version
	}
	parsed := make([]keyed, len(items))
	for i, item := range items {
		parsed[i] = keyed{item: item, version: Parse(name(item))}
	}
	slices.SortStableFunc(parsed, func(a, b keyed) int {
		return b.version.Compare(a.version)
	})
	for i := range parsed {
		items[i] = parsed[i].item
	}
}

func parseItem(isDigit bool, token string) item {
	if isDigit {
		return intItem(strings.TrimLeft(token, "0"))
	}
	return newStringItem(token, false)
}

func sign(n int) int {
	return cmp.Compare(n, 0)
}
