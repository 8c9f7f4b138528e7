package cleaner

import "strings"

// NodeKind classifies a directory once its direct entries are known.
// A directory may be both a version and an artifact directory.
type NodeKind uint8

const (
	// NodeVersion directories hold a .pom file directly.
	NodeVersion NodeKind = 1 << iota
	// NodeArtifact directories have at least one NodeVersion child.
	NodeArtifact
)

// NodePlain is a directory that is neither.
const NodePlain NodeKind = 0

func classifyNode(pomPresent, childPomPresent bool) NodeKind {
	kind := NodePlain
	if pomPresent {
		kind |= NodeVersion
	}
	if childPomPresent {
		kind |= NodeArtifact
	}
	return kind
}

// Has reports whether all bits of flag are set.
func (k NodeKind) Has(flag NodeKind) bool {
	return k&flag == flag
}

func (k NodeKind) String() string {
	if k == NodePlain {
		return "plain"
	}
	var parts []string
	if k.Has(NodeVersion) {
		parts = append(parts, "version")
	}
	if k.Has(NodeArtifact) {
		parts = append(parts, "artifact")
	}
	return strings.Join(parts, "+")
}
