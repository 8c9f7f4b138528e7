// Package cleaner walks a local artifact repository and decides which version
// directories and which superseded build files are stale.
//
// The repository follows the <group path>/<artifact>/<version>/<files> layout.
// A directory that directly contains a .pom file is a version directory; a
// directory with at least one such child is an artifact directory. The walk
// is depth-first and post-order: every directory is evaluated after all of its
// children, and its Result is the sum of the children's results plus its own
// findings.
//
// Nothing is deleted unless Options.DeleteBuilds or Options.DeleteVersions is
// set. Units that are eligible for removal but remain on disk, because
// deletion is disabled or failed, are reported as potential.
//
//	engine := cleaner.New(root, cleaner.Options{
//	    DeleteVersions: true,
//	    Rules:          cleaner.Rules{Whitelist: whitelist},
//	}, cleaner.WithLogger(log))
//	result, err := engine.Run()
package cleaner
