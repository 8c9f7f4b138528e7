package version

import (
	"cmp"
	"strings"
)

// item is one token of a parsed version. compareTo accepts a nil other, which
// stands for a missing token and compares like the neutral element.
type item interface {
	compareTo(other item) int
	isNull() bool
	String() string
}

// intItem holds the decimal digits of a numeric token without leading zeros;
// the empty string is zero.
type intItem string

func (i intItem) isNull() bool {
	return i == ""
}

func (i intItem) compareTo(other item) int {
	switch o := other.(type) {
	case nil:
		if i.isNull() {
			return 0
		}
		return 1
	case intItem:
		if len(i) != len(o) {
			return cmp.Compare(len(i), len(o))
		}
		return strings.Compare(string(i), string(o))
	default:
		// numbers are newer than qualifiers and nested lists
		return 1
	}
}

func (i intItem) String() string {
	if i == "" {
		return "0"
	}
	return string(i)
}

const (
	rankAlpha = iota
	rankBeta
	rankMilestone
	rankRC
	rankSnapshot
	rankUnknown
	rankRelease
	rankSP
)

var qualifierRanks = map[string]int{
	"alpha":     rankAlpha,
	"beta":      rankBeta,
	"milestone": rankMilestone,
	"rc":        rankRC,
	"snapshot":  rankSnapshot,
	"":          rankRelease,
	"sp":        rankSP,
}

var qualifierAliases = map[string]string{
	"ga":      "",
	"final":   "",
	"release": "",
	"cr":      "rc",
}

type stringItem string

func newStringItem(value string, followedByDigit bool) stringItem {
	if followedByDigit && len(value) == 1 {
		switch value[0] {
		case 'a':
			value = "alpha"
		case 'b':
			value = "beta"
		case 'm':
			value = "milestone"
		}
	}
	if alias, ok := qualifierAliases[value]; ok {
		value = alias
	}
	return stringItem(value)
}

func qualifierRank(q string) int {
	if rank, ok := qualifierRanks[q]; ok {
		return rank
	}
	return rankUnknown
}

func compareQualifiers(a, b string) int {
	ra, rb := qualifierRank(a), qualifierRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	if ra == rankUnknown {
		return strings.Compare(a, b)
	}
	return 0
}

func (s stringItem) isNull() bool {
	return qualifierRank(string(s)) == rankRelease
}

func (s stringItem) compareTo(other item) int {
	switch o := other.(type) {
	case nil:
		return compareQualifiers(string(s), "")
	case stringItem:
		return compareQualifiers(string(s), string(o))
	default:
		return -1
	}
}

func (s stringItem) String() string {
	return string(s)
}

type listItem struct {
	items []item
}

func (l *listItem) add(it item) {
	l.items = append(l.items, it)
}

func (l *listItem) isNull() bool {
	return len(l.items) == 0
}

// normalize drops trailing null tokens. Nested lists do not stop the scan, so
// the zero in [1, 0, [alpha]] is removed as well.
func (l *listItem) normalize() {
	for i := len(l.items) - 1; i >= 0; i-- {
		last := l.items[i]
		if last.isNull() {
			l.items = append(l.items[:i], l.items[i+1:]...)
			continue
		}
		if _, nested := last.(*listItem); !nested {
			break
		}
	}
}

func (l *listItem) compareTo(other item) int {
	switch o := other.(type) {
	case nil:
		for _, it := range l.items {
			if result := it.compareTo(nil); result != 0 {
				return result
			}
		}
		return 0
	case intItem:
		return -1
	case stringItem:
		return 1
	case *listItem:
		n := max(len(l.items), len(o.items))
		for i := 0; i < n; i++ {
			var left, right item
			if i < len(l.items) {
				left = l.items[i]
			}
			if i < len(o.items) {
				right = o.items[i]
			}

			var result int
			switch {
			case left == nil && right == nil:
				result = 0
			case left == nil:
				result = -right.compareTo(nil)
			default:
				result = left.compareTo(right)
			}
			if result != 0 {
				return result
			}
		}
		return 0
	default:
		return 0
	}
}

func (l *listItem) String() string {
	var b strings.Builder
	for i, it := range l.items {
		if i > 0 {
			if _, nested := it.(*listItem); nested {
				b.WriteByte('-')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString(it.String())
	}
	return b.String()
}
