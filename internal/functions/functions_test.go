package functions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docbind/internal/docs"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gl4.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: BindBuffer
  parameters: [target, buffer]
- name: Uniform4fv
  trimmed_name: Uniform4
  parameters: [location, count, value]
- name: Finish
`), 0o600))

	fns, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []docs.Function{
		{Name: "BindBuffer", Parameters: []string{"target", "buffer"}},
		{Name: "Uniform4fv", TrimmedName: "Uniform4", Parameters: []string{"location", "count", "value"}},
		{Name: "Finish"},
	}, fns)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestDecodeEmpty(t *testing.T) {
	fns, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, fns)
	assert.NotNil(t, fns)
}

func TestDecodeRejects(t *testing.T) {
	for name, content := range map[string]string{
		"not a list": "name: Finish\n",
		"no name":    "- parameters: [a]\n",
		"duplicate":  "- name: Finish\n- name: Finish\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(content))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}
