package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/repocleaner/internal/filter"
)

func coords(versions ...string) []Coordinates {
	out := make([]Coordinates, len(versions))
	for i, v := range versions {
		out[i] = Coordinates{Group: "com.example", Artifact: "lib", Version: v}
	}
	return out
}

func mustList(t *testing.T, entries ...string) filter.List {
	t.Helper()
	list, err := filter.CompileAll(entries)
	require.NoError(t, err)
	return list
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		versions []string // newest first
		rules    func(t *testing.T) Rules
		want     []Disposition
	}{
		{
			name:     "default keeps newest only",
			versions: []string{"1.2-SNAPSHOT", "1.1", "1.0"},
			rules:    func(t *testing.T) Rules { return Rules{} },
			want:     []Disposition{KeepLatest, RemoveSuperseded, RemoveSuperseded},
		},
		{
			name:     "blacklist removes regardless of rank",
			versions: []string{"1.2-SNAPSHOT", "1.1", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{Blacklist: mustList(t, "1.1")}
			},
			want: []Disposition{KeepLatest, RemoveBlacklisted, RemoveSuperseded},
		},
		{
			name:     "blacklisted newest is removed and nothing replaces it",
			versions: []string{"1.2-SNAPSHOT", "1.1", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{Blacklist: mustList(t, "*-SNAPSHOT")}
			},
			want: []Disposition{RemoveBlacklisted, RemoveSuperseded, RemoveSuperseded},
		},
		{
			name:     "whitelist overrides blacklist",
			versions: []string{"1.2-SNAPSHOT", "1.1", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{Whitelist: mustList(t, "1.1"), Blacklist: mustList(t, "1.1")}
			},
			want: []Disposition{KeepLatest, KeepWhitelisted, RemoveSuperseded},
		},
		{
			name:     "preserve latest scoped to its matches",
			versions: []string{"2.1-SNAPSHOT", "2.0-SNAPSHOT", "1.1", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{PreserveLatest: mustList(t, "*-SNAPSHOT")}
			},
			want: []Disposition{KeepPreserved, RemoveSuperseded, RemoveSuperseded, RemoveSuperseded},
		},
		{
			name:     "preserve latest per major line",
			versions: []string{"3.0", "2.5", "2.4", "1.9", "1.8"},
			rules: func(t *testing.T) Rules {
				return Rules{PreserveLatest: mustList(t, "2.*", "1.*")}
			},
			want: []Disposition{KeepLatest, KeepPreserved, RemoveSuperseded, KeepPreserved, RemoveSuperseded},
		},
		{
			name:     "preserve latest beats blacklist",
			versions: []string{"2.0", "1.1", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{PreserveLatest: mustList(t, "1.*"), Blacklist: mustList(t, "1.*")}
			},
			want: []Disposition{KeepLatest, KeepPreserved, RemoveBlacklisted},
		},
		{
			name:     "whitelisted newest match still consumes the preserve slot",
			versions: []string{"2.0", "1.1", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{Whitelist: mustList(t, "1.1"), PreserveLatest: mustList(t, "1.*")}
			},
			want: []Disposition{KeepLatest, KeepWhitelisted, RemoveSuperseded},
		},
		{
			name:     "whitelisted newest leaves no default latest",
			versions: []string{"2.0", "1.1", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{Whitelist: mustList(t, "2.0")}
			},
			want: []Disposition{KeepWhitelisted, RemoveSuperseded, RemoveSuperseded},
		},
		{
			name:     "filters respect artifact coordinates",
			versions: []string{"2.0", "1.0"},
			rules: func(t *testing.T) Rules {
				return Rules{Whitelist: mustList(t, "other:1.0"), Blacklist: mustList(t, "com.example:lib:2.0")}
			},
			want: []Disposition{RemoveBlacklisted, RemoveSuperseded},
		},
		{
			name:     "empty input",
			versions: nil,
			rules:    func(t *testing.T) Rules { return Rules{} },
			want:     []Disposition{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(coords(tt.versions...), tt.rules(t))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisposition(t *testing.T) {
	assert.False(t, KeepWhitelisted.Removes())
	assert.False(t, KeepPreserved.Removes())
	assert.False(t, KeepLatest.Removes())
	assert.True(t, RemoveBlacklisted.Removes())
	assert.True(t, RemoveSuperseded.Removes())

	assert.Equal(t, "Preserve latest", KeepPreserved.String())
	assert.Equal(t, "Unknown", Disposition(42).String())
}

func TestNodeKind(t *testing.T) {
	assert.Equal(t, NodePlain, classifyNode(false, false))
	assert.Equal(t, NodeVersion, classifyNode(true, false))
	assert.Equal(t, NodeArtifact, classifyNode(false, true))

	both := classifyNode(true, true)
	assert.True(t, both.Has(NodeVersion))
	assert.True(t, both.Has(NodeArtifact))
	assert.Equal(t, "version+artifact", both.String())
	assert.Equal(t, "plain", NodePlain.String())
}
