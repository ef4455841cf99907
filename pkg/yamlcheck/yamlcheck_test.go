package yamlcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"Simple Mapping", "key: value\n", false},
		{"Empty File", "", false},
		{"Multiple Documents", "a: 1\n---\nb: 2\n", false},
		{"Unclosed Flow Sequence", "key: [unclosed\n", true},
		{"Broken Second Document", "a: 1\n---\nb: [\n", true},
		{"Unterminated Quote", "key: \"open\n", true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.Repeat("x", i+1)+".yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			err := ValidateFile(path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.yml"), []byte("key: [unclosed"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "good.yml"), []byte("key: value"), 0644))

	t.Run("Continues Past Broken File", func(t *testing.T) {
		res := Validate(root, []string{"bad.yml", "good.yml"})

		assert.False(t, res.Passed())
		errs := res.Errors()
		require.Len(t, errs, 1)
		assert.True(t, strings.HasPrefix(errs[0], "bad.yml has YAML errors: "), errs[0])
		assert.Equal(t, "good.yml is valid YAML", res.Entries[1].Message)
	})

	t.Run("Missing File Fails", func(t *testing.T) {
		res := Validate(root, []string{"docker-compose.yml"})
		assert.False(t, res.Passed())
	})

	t.Run("Absolute Paths", func(t *testing.T) {
		res := Validate("/nonexistent", []string{filepath.Join(root, "good.yml")})
		assert.True(t, res.Passed())
	})
}
