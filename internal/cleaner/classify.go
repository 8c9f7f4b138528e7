package cleaner

import (
	"github.com/harrison/repocleaner/internal/filter"
)

// Coordinates identify one version directory.
type Coordinates struct {
	Group    string // Group path below the root joined with '.'
	Artifact string
	Version  string
}

func (c Coordinates) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// Rules are the three filter lists in order of precedence.
type Rules struct {
	Whitelist      filter.List // Never removed
	PreserveLatest filter.List // Newest match of each entry is kept
	Blacklist      filter.List // Removed unless kept by the lists above
}

// Disposition is the verdict for one version directory.
type Disposition int

const (
	KeepWhitelisted Disposition = iota
	KeepPreserved
	KeepLatest
	RemoveBlacklisted
	RemoveSuperseded
)

// Removes reports whether the directory is designated for removal.
func (d Disposition) Removes() bool {
	return d == RemoveBlacklisted || d == RemoveSuperseded
}

func (d Disposition) String() string {
	switch d {
	case KeepWhitelisted:
		return "Whitelist"
	case KeepPreserved:
		return "Preserve latest"
	case KeepLatest:
		return "Latest version"
	case RemoveBlacklisted:
		return "Blacklist"
	case RemoveSuperseded:
		return "Remove version"
	default:
		return "Unknown"
	}
}

// Classify assigns a disposition to each sibling version directory. dirs must
// be sorted newest first.
//
// Precedence per directory: whitelisted, preserved as the newest match of a
// preserve-latest entry, blacklisted, and finally kept only when it is the
// newest of all siblings.
func Classify(dirs []Coordinates, rules Rules) []Disposition {
	preserved := make([]bool, len(dirs))
	for _, f := range rules.PreserveLatest {
		for i, c := range dirs {
			if f.Matches(c.Group, c.Artifact, c.Version) {
				preserved[i] = true
				break
			}
		}
	}

	dispositions := make([]Disposition, len(dirs))
	for i, c := range dirs {
		switch {
		case rules.Whitelist.MatchAny(c.Group, c.Artifact, c.Version):
			dispositions[i] = KeepWhitelisted
		case preserved[i]:
			dispositions[i] = KeepPreserved
		case rules.Blacklist.MatchAny(c.Group, c.Artifact, c.Version):
			dispositions[i] = RemoveBlacklisted
		case i == 0:
			dispositions[i] = KeepLatest
		default:
			dispositions[i] = RemoveSuperseded
		}
	}
	return dispositions
}
