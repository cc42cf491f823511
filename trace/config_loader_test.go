package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 2, p.TurdSize)
	assert.Equal(t, TurnMinority, p.TurnPolicy)
	assert.Equal(t, 1.0, p.AlphaMax)
	assert.Equal(t, 0.2, p.OptTolerance)
	assert.NoError(t, p.Validate())
}

func TestLoadParams(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	content := `
turdSize: 5
turnPolicy: majority
alphaMax: 0.8
optTolerance: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, 5, p.TurdSize)
	assert.Equal(t, TurnMajority, p.TurnPolicy)
	assert.Equal(t, 0.8, p.AlphaMax)
	assert.Equal(t, 0.5, p.OptTolerance)
}

func TestLoadParamsPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("turdSize: 10\n"), 0644))

	p, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, 10, p.TurdSize)
	assert.Equal(t, TurnMinority, p.TurnPolicy, "unset fields keep defaults")
	assert.Equal(t, 0.2, p.OptTolerance)
}

func TestLoadParamsValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad turdsize", "turdSize: 2000\n"},
		{"bad policy", "turnPolicy: diagonal\n"},
		{"bad alphamax", "alphaMax: 2.0\n"},
		{"bad opttolerance", "optTolerance: -1\n"},
		{"malformed yaml", "turdSize: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := LoadParams(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadParamsMissingFile(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveParamsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	p := &Params{TurdSize: 7, TurnPolicy: TurnRandom, AlphaMax: 1.2, OptTolerance: 0.1}
	require.NoError(t, SaveParams(path, p))

	loaded, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, p.TurdSize, loaded.TurdSize)
	assert.Equal(t, p.TurnPolicy, loaded.TurnPolicy)
	assert.Equal(t, p.AlphaMax, loaded.AlphaMax)
	assert.Equal(t, p.OptTolerance, loaded.OptTolerance)
}
