package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/harrison/repocleaner/internal/models"
	"github.com/harrison/repocleaner/internal/version"
)

// ErrNotDirectory is returned when the repository root is not a directory.
var ErrNotDirectory = errors.New("repository root is not a directory")

// Options control what the engine is allowed to delete and which rules decide
// the fate of version directories.
type Options struct {
	DeleteBuilds   bool
	DeleteVersions bool
	Rules          Rules
}

// Result is the aggregated outcome of one subtree.
type Result struct {
	models.Stats
	// PomPresent is set when the directory itself holds a .pom file.
	PomPresent bool
}

// Engine walks one repository.
type Engine struct {
	root string
	opts Options
	fs   FileSystem
	log  Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFileSystem replaces the host filesystem.
func WithFileSystem(fsys FileSystem) Option {
	return func(e *Engine) {
		e.fs = fsys
	}
}

// WithLogger routes decision traces and warnings to l.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine for the repository rooted at root.
func New(root string, opts Options, options ...Option) *Engine {
	e := &Engine{
		root: root,
		opts: opts,
		fs:   OSFileSystem{},
		log:  nopLogger{},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run traverses the whole repository. Deletion failures are logged and
// reported as potential; only an unusable root is an error.
func (e *Engine) Run() (Result, error) {
	root, err := filepath.Abs(e.root)
	if err != nil {
		return Result{}, fmt.Errorf("resolve repository root: %w", err)
	}
	info, err := e.fs.Stat(root)
	if err != nil {
		return Result{}, fmt.Errorf("stat repository root: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	e.root = root
	return e.traverse(root), nil
}

type fileEntry struct {
	name string
	size int64
}

func (e *Engine) traverse(dir string) Result {
	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		e.log.LogWarn(fmt.Sprintf("Couldn't read directory: %s: %v", dir, err))
	}

	var result Result
	var files []fileEntry
	var subdirs []string
	childPomPresent := false

	for _, entry := range entries {
		if entry.IsDir() {
			child := e.traverse(filepath.Join(dir, entry.Name()))
			if child.PomPresent {
				childPomPresent = true
			}
			result.Add(child.Stats)
			subdirs = append(subdirs, entry.Name())
			continue
		}

		size := entrySize(entry)
		result.AllFiles++
		result.AllSize += size
		files = append(files, fileEntry{name: entry.Name(), size: size})
		if strings.HasSuffix(entry.Name(), PomExtension) {
			result.PomPresent = true
		}
	}

	kind := classifyNode(result.PomPresent, childPomPresent)
	if kind.Has(NodeVersion) {
		result.Builds.Add(e.evaluateBuilds(dir, files))
	}
	if kind.Has(NodeArtifact) {
		result.Versions.Add(e.evaluateVersions(dir, subdirs))
	}
	return result
}

func (e *Engine) evaluateBuilds(dir string, files []fileEntry) models.Category {
	names := make([]string, len(files))
	sizes := make(map[string]int64, len(files))
	for i, f := range files {
		names[i] = f.name
		sizes[f.name] = f.size
	}

	var c models.Category
	artifact, ver := filepath.Base(filepath.Dir(dir)), filepath.Base(dir)
	for _, unit := range GroupBuilds(artifact, ver, names) {
		e.log.LogDebug("Remove build:    " + e.relative(filepath.Join(dir, unit.Name)))
		if !e.opts.DeleteBuilds {
			c.PotentialCount++
			for _, name := range unit.Files {
				c.AddPotentialFile(sizes[name])
			}
			continue
		}

		complete := true
		for _, name := range unit.Files {
			path := filepath.Join(dir, name)
			if err := e.fs.Remove(path); err != nil {
				e.log.LogWarn(fmt.Sprintf("Couldn't remove file: %s: %v", path, err))
				c.AddPotentialFile(sizes[name])
				complete = false
				continue
			}
			c.AddDeletedFile(sizes[name])
		}
		if complete {
			c.DeletedCount++
		} else {
			c.PotentialCount++
		}
	}
	return c
}

func (e *Engine) evaluateVersions(dir string, subdirs []string) models.Category {
	sorted := slices.Clone(subdirs)
	version.SortDescending(sorted, func(name string) string { return name })

	coordinates := make([]Coordinates, len(sorted))
	for i, name := range sorted {
		coordinates[i] = e.coordinates(filepath.Join(dir, name))
	}

	var c models.Category
	for i, disposition := range Classify(coordinates, e.opts.Rules) {
		path := filepath.Join(dir, sorted[i])
		e.log.LogDebug(fmt.Sprintf("%-17s%s", disposition.String()+":", e.relative(path)))
		if disposition.Removes() {
			c.Add(e.removeVersion(path))
		}
	}
	return c
}

// removeVersion deletes every file below path and then the emptied
// directories. When anything is left behind the directory counts as potential.
func (e *Engine) removeVersion(path string) models.Category {
	var c models.Category
	files, dirs, listed := e.collect(path)

	if !e.opts.DeleteVersions {
		for _, f := range files {
			c.AddPotentialFile(f.size)
		}
		c.PotentialCount++
		return c
	}

	complete := listed
	for _, f := range files {
		if err := e.fs.Remove(f.name); err != nil {
			e.log.LogWarn(fmt.Sprintf("Couldn't remove file: %s: %v", f.name, err))
			c.AddPotentialFile(f.size)
			complete = false
			continue
		}
		c.AddDeletedFile(f.size)
	}

	if complete {
		for i := len(dirs) - 1; i >= 0; i-- {
			if err := e.fs.Remove(dirs[i]); err != nil {
				e.log.LogWarn(fmt.Sprintf("Couldn't remove directory: %s: %v", dirs[i], err))
				complete = false
				break
			}
		}
	} else {
		e.log.LogWarn("Couldn't remove directory: " + path)
	}

	if complete {
		c.DeletedCount++
	} else {
		c.PotentialCount++
	}
	return c
}

// collect lists the files (with absolute names) and directories below path,
// directories in pre-order. listed is false when a directory could not be
// read completely.
func (e *Engine) collect(path string) (files []fileEntry, dirs []string, listed bool) {
	listed = true
	dirs = append(dirs, path)
	entries, err := e.fs.ReadDir(path)
	if err != nil {
		e.log.LogWarn(fmt.Sprintf("Couldn't read directory: %s: %v", path, err))
		listed = false
	}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			subFiles, subDirs, subListed := e.collect(child)
			files = append(files, subFiles...)
			dirs = append(dirs, subDirs...)
			listed = listed && subListed
			continue
		}
		files = append(files, fileEntry{name: child, size: entrySize(entry)})
	}
	return files, dirs, listed
}

func (e *Engine) coordinates(path string) Coordinates {
	rel, err := filepath.Rel(e.root, path)
	if err != nil {
		return Coordinates{Version: filepath.Base(path)}
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	c := Coordinates{Version: parts[len(parts)-1]}
	if len(parts) >= 2 {
		c.Artifact = parts[len(parts)-2]
	}
	if len(parts) >= 3 {
		c.Group = strings.Join(parts[:len(parts)-2], ".")
	}
	return c
}

func (e *Engine) relative(path string) string {
	rel, err := filepath.Rel(e.root, path)
	if err != nil {
		return path
	}
	return string(filepath.Separator) + rel
}

func entrySize(entry fs.DirEntry) int64 {
	info, err := entry.Info()
	if err != nil {
		return 0
	}
	return info.Size()
}
