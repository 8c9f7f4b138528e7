package models

// Category holds the counters for one kind of removable unit (builds or
// versions). Potential units were eligible for removal but are still on disk,
// either because deletion was disabled or because it failed.
type Category struct {
	PotentialCount int   `json:"potential_count" yaml:"potential_count"` // Units eligible but not removed
	PotentialFiles int   `json:"potential_files" yaml:"potential_files"` // Files of those units
	PotentialSize  int64 `json:"potential_size" yaml:"potential_size"`   // Bytes of those files
	DeletedCount   int   `json:"deleted_count" yaml:"deleted_count"`     // Units removed from disk
	DeletedFiles   int   `json:"deleted_files" yaml:"deleted_files"`     // Files actually deleted
	DeletedSize    int64 `json:"deleted_size" yaml:"deleted_size"`       // Bytes actually freed
}

// Add merges other into c.
func (c *Category) Add(other Category) {
	c.PotentialCount += other.PotentialCount
	c.PotentialFiles += other.PotentialFiles
	c.PotentialSize += other.PotentialSize
	c.DeletedCount += other.DeletedCount
	c.DeletedFiles += other.DeletedFiles
	c.DeletedSize += other.DeletedSize
}

// AddPotentialFile records a file that stays on disk.
func (c *Category) AddPotentialFile(size int64) {
	c.PotentialFiles++
	c.PotentialSize += size
}

// AddDeletedFile records a file that was removed.
func (c *Category) AddDeletedFile(size int64) {
	c.DeletedFiles++
	c.DeletedSize += size
}

// Stats aggregates a repository subtree.
type Stats struct {
	AllFiles int      `json:"all_files" yaml:"all_files"` // Every regular file seen, before deletion
	AllSize  int64    `json:"all_size" yaml:"all_size"`   // Total bytes of those files
	Builds   Category `json:"builds" yaml:"builds"`       // Superseded build clusters
	Versions Category `json:"versions" yaml:"versions"`   // Superseded version directories
}

// Add merges a child's statistics into s.
func (s *Stats) Add(child Stats) {
	s.AllFiles += child.AllFiles
	s.AllSize += child.AllSize
	s.Builds.Add(child.Builds)
	s.Versions.Add(child.Versions)
}

// RemainingFiles is the file count after the run.
func (s Stats) RemainingFiles() int {
	return s.AllFiles - s.Builds.DeletedFiles - s.Versions.DeletedFiles
}

// RemainingSize is the byte count after the run.
func (s Stats) RemainingSize() int64 {
	return s.AllSize - s.Builds.DeletedSize - s.Versions.DeletedSize
}
