package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		args     []string
		wantErr  bool
		contains []string
		excludes []string
	}{
		{
			name:     "defaults",
			contains: []string{"✓ whitelist: none", "✓ Mode: dry run", "✓ Configuration is valid!"},
		},
		{
			name:     "filters from config",
			config:   "delete_versions: true\nwhitelist:\n  - \"org.example:*:1.*\"\nblacklist:\n  - \"*-SNAPSHOT\"\n",
			contains: []string{"✓ whitelist: org.example:*:1.*", "✓ blacklist: *-SNAPSHOT", "✓ Mode: delete versions"},
		},
		{
			name:     "flags override config",
			config:   "blacklist:\n  - \"1.0\"\n",
			args:     []string{"--blacklist", "2.*,3.*", "--delete-builds", "--delete-versions"},
			contains: []string{"✓ blacklist: 2.*, 3.*", "✓ Mode: delete builds and versions"},
			excludes: []string{"1.0"},
		},
		{
			name:     "every error reported",
			config:   "execution_probability: 2\nlog_level: loud\npreserve_latest:\n  - \"a:b:c:d\"\n",
			wantErr:  true,
			contains: []string{"✗ Validation failed", "execution_probability", "log_level", "preserve_latest"},
			excludes: []string{"Configuration is valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHome(t)
			repo := t.TempDir()
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if tt.config != "" {
				require.NoError(t, os.WriteFile(configPath, []byte(tt.config), 0644))
			}

			args := append([]string{"--config", configPath, "validate", "-r", repo}, tt.args...)
			stdout, _, err := runCLI(t, "", args...)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "3 validation error(s)")
			} else {
				require.NoError(t, err)
				assert.Contains(t, stdout, "✓ Repository: "+repo)
			}
			for _, want := range tt.contains {
				assert.Contains(t, stdout, want)
			}
			for _, unwanted := range tt.excludes {
				assert.False(t, strings.Contains(stdout, unwanted), "unexpected %q in:\n%s", unwanted, stdout)
			}
		})
	}
}

func TestValidateDoesNotTouchRepository(t *testing.T) {
	setupHome(t)
	repo := writeRepo(t)

	_, _, err := runCLI(t, "", "validate", "-r", repo, "--delete-versions", "--blacklist", "*")
	require.NoError(t, err)

	for _, v := range []string{"1.0", "1.1", "1.2"} {
		assert.True(t, versionExists(repo, v), v)
	}
}
