package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsAdd(t *testing.T) {
	parent := Stats{
		AllFiles: 2,
		AllSize:  100,
		Builds:   Category{PotentialCount: 1, PotentialFiles: 2, PotentialSize: 50},
	}
	child := Stats{
		AllFiles: 3,
		AllSize:  30,
		Builds:   Category{DeletedCount: 1, DeletedFiles: 1, DeletedSize: 10},
		Versions: Category{PotentialCount: 2, PotentialFiles: 2, PotentialSize: 20, DeletedCount: 1, DeletedFiles: 3, DeletedSize: 7},
	}

	parent.Add(child)

	assert.Equal(t, 5, parent.AllFiles)
	assert.Equal(t, int64(130), parent.AllSize)
	assert.Equal(t, Category{PotentialCount: 1, PotentialFiles: 2, PotentialSize: 50, DeletedCount: 1, DeletedFiles: 1, DeletedSize: 10}, parent.Builds)
	assert.Equal(t, Category{PotentialCount: 2, PotentialFiles: 2, PotentialSize: 20, DeletedCount: 1, DeletedFiles: 3, DeletedSize: 7}, parent.Versions)
}

func TestStatsAddZeroIsIdentity(t *testing.T) {
	s := Stats{AllFiles: 4, AllSize: 9, Versions: Category{DeletedFiles: 1, DeletedSize: 2}}
	before := s

	s.Add(Stats{})

	assert.Equal(t, before, s)
}

func TestCategoryFileCounters(t *testing.T) {
	var c Category
	c.AddDeletedFile(10)
	c.AddDeletedFile(5)
	c.AddPotentialFile(7)

	assert.Equal(t, 2, c.DeletedFiles)
	assert.Equal(t, int64(15), c.DeletedSize)
	assert.Equal(t, 1, c.PotentialFiles)
	assert.Equal(t, int64(7), c.PotentialSize)
	assert.Zero(t, c.DeletedCount)
	assert.Zero(t, c.PotentialCount)
}

func TestRemaining(t *testing.T) {
	s := Stats{
		AllFiles: 10,
		AllSize:  1000,
		Builds:   Category{DeletedFiles: 2, DeletedSize: 200},
		Versions: Category{DeletedCount: 1, DeletedFiles: 3, DeletedSize: 300},
	}

	assert.Equal(t, 5, s.RemainingFiles())
	assert.Equal(t, int64(500), s.RemainingSize())
}

func TestCleanRunDryRun(t *testing.T) {
	assert.True(t, CleanRun{}.DryRun())
	assert.False(t, CleanRun{DeleteBuilds: true}.DryRun())
	assert.False(t, CleanRun{DeleteVersions: true}.DryRun())
}

func TestCleanRunStatus(t *testing.T) {
	tests := []struct {
		run  CleanRun
		want string
	}{
		{run: CleanRun{}, want: "dry-run"},
		{run: CleanRun{DeleteVersions: true}, want: "cleaned"},
		{run: CleanRun{DeleteVersions: true, Skipped: true}, want: "skipped"},
		{run: CleanRun{Skipped: true, Error: "boom"}, want: "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.run.Status())
		})
	}
}
