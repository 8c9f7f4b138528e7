package cleaner

import "strings"

// PomExtension marks the descriptor file of one artifact version.
const PomExtension = ".pom"

// BuildUnit is a cluster of files that belong to one build of a version,
// e.g. the jar, pom and checksums of one timestamped snapshot.
type BuildUnit struct {
	Name  string   // Shortest build name of the cluster
	Files []string // File names in first-seen order
}

// GroupBuilds clusters the files of a version directory into build units.
//
// Only files that start with the artifact name but not with
// "<artifact>-<version>" are considered; the canonical files of the version
// itself are never part of a build. A file's build name is its name without
// the last extension. A file joins the first cluster whose name is a prefix
// of its build name or vice versa, and the cluster takes the shorter of the
// two names. Otherwise it starts a new cluster.
//
// The result depends on the order of files, so callers pass them sorted.
func GroupBuilds(artifact, version string, files []string) []BuildUnit {
	canonical := artifact + "-" + version

	var units []BuildUnit
	for _, file := range files {
		if !strings.HasPrefix(file, artifact) || strings.HasPrefix(file, canonical) {
			continue
		}
		build := buildName(file)

		merged := false
		for i := range units {
			representative := units[i].Name
			if !strings.HasPrefix(build, representative) && !strings.HasPrefix(representative, build) {
				continue
			}
			if len(build) < len(representative) {
				units[i].Name = build
			}
			units[i].Files = append(units[i].Files, file)
			merged = true
			break
		}
		if !merged {
			units = append(units, BuildUnit{Name: build, Files: []string{file}})
		}
	}
	return units
}

func buildName(file string) string {
	if i := strings.LastIndexByte(file, '.'); i >= 0 {
		return file[:i]
	}
	return file
}
