package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/lang/dockerfile"
	"github.com/oxhq/sgrep/lang/golang"
	"github.com/oxhq/sgrep/lang/hcl"
)

func fullRegistry(t *testing.T) *lang.Registry {
	t.Helper()
	reg := lang.NewRegistry()
	require.NoError(t, reg.Register(golang.Adapter))
	require.NoError(t, reg.Register(hcl.Adapter))
	require.NoError(t, reg.Register(dockerfile.Adapter))
	return reg
}

func TestRegistry_RegisterDuplicateErrors(t *testing.T) {
	reg := lang.NewRegistry()
	require.NoError(t, reg.Register(golang.Adapter))
	assert.Error(t, reg.Register(golang.Adapter))
}

func TestRegistry_Get(t *testing.T) {
	reg := fullRegistry(t)

	a, err := reg.Get("go")
	require.NoError(t, err)
	assert.Equal(t, "go", a.Name())

	_, err = reg.Get("cobol")
	assert.Error(t, err)
}

func TestRegistry_ForExtension(t *testing.T) {
	reg := fullRegistry(t)

	cases := map[string]string{
		"main.go":             "go",
		"network.tf":          "hcl",
		"config.hcl":          "hcl",
		"Dockerfile":          "dockerfile",
		"builder.dockerfile":  "dockerfile",
	}
	for filename, want := range cases {
		a, err := reg.ForExtension(filename)
		require.NoError(t, err, filename)
		assert.Equal(t, want, a.Name(), filename)
	}

	_, err := reg.ForExtension("README.md")
	assert.Error(t, err)
}

func TestRegistry_Languages_SortedAndComplete(t *testing.T) {
	reg := fullRegistry(t)
	assert.Equal(t, []string{"dockerfile", "go", "hcl"}, reg.Languages())
}
