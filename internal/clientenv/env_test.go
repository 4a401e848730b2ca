package clientenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vitePrefix = []string{"VITE_"}

func writeEnvFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_OnlyPrefixedVariablesAreExposed(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "VITE_TITLE=Proposals\nDB_PASSWORD=secret\nSECRET_VITE_KEY=nope\n")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "also-secret")
	t.Setenv("VITE_FROM_PROCESS", "yes")

	env, err := Load("development", dir, vitePrefix)
	require.NoError(t, err)

	assert.Equal(t, "Proposals", env.Value("VITE_TITLE"))
	assert.Equal(t, "yes", env.Value("VITE_FROM_PROCESS"))
	for _, key := range env.Keys() {
		assert.Regexp(t, `^VITE_`, key)
	}
	_, ok := env.Get("DB_PASSWORD")
	assert.False(t, ok)
	_, ok = env.Get("SECRET_VITE_KEY")
	assert.False(t, ok)
	_, ok = env.Get("AWS_SECRET_ACCESS_KEY")
	assert.False(t, ok)
}

func TestLoad_FilePriority(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "VITE_A=base\nVITE_B=base\nVITE_C=base\nVITE_D=base\n")
	writeEnvFile(t, dir, ".env.local", "VITE_B=local\nVITE_C=local\nVITE_D=local\n")
	writeEnvFile(t, dir, ".env.production", "VITE_C=mode\nVITE_D=mode\n")
	writeEnvFile(t, dir, ".env.production.local", "VITE_D=mode-local\n")
	writeEnvFile(t, dir, ".env.development", "VITE_A=wrong-mode\n")

	env, err := Load("production", dir, vitePrefix)
	require.NoError(t, err)

	assert.Equal(t, "base", env.Value("VITE_A"))
	assert.Equal(t, "local", env.Value("VITE_B"))
	assert.Equal(t, "mode", env.Value("VITE_C"))
	assert.Equal(t, "mode-local", env.Value("VITE_D"))
	assert.Len(t, env.LoadedFiles(), 4)
}

func TestLoad_ProcessEnvWinsOverFiles(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "VITE_API_URL=http://from-file:9000\n")
	t.Setenv("VITE_API_URL", "http://from-process:9001")

	env, err := Load("development", dir, vitePrefix)
	require.NoError(t, err)
	assert.Equal(t, "http://from-process:9001", env.Value("VITE_API_URL"))
}

func TestLoad_MissingFilesAreSkipped(t *testing.T) {
	env, err := Load("development", t.TempDir(), vitePrefix)
	require.NoError(t, err)
	assert.Empty(t, env.LoadedFiles())
}

func TestLoad_EmptyPrefixRejected(t *testing.T) {
	tests := []struct {
		name     string
		prefixes []string
	}{
		{"nil", nil},
		{"empty string", []string{""}},
		{"one of many empty", []string{"VITE_", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("development", t.TempDir(), tt.prefixes)
			assert.ErrorIs(t, err, ErrEmptyPrefix)
		})
	}
}

func TestLoad_MultiplePrefixes(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "VITE_A=1\nAPP_B=2\nOTHER_C=3\n")

	env, err := Load("development", dir, []string{"VITE_", "APP_"})
	require.NoError(t, err)
	assert.Equal(t, "1", env.Value("VITE_A"))
	assert.Equal(t, "2", env.Value("APP_B"))
	assert.Equal(t, "", env.Value("OTHER_C"))
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o700))

	_, err := Load("development", dir, vitePrefix)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestFromMap_Copies(t *testing.T) {
	src := map[string]string{"VITE_X": "1"}
	env := FromMap(src)
	src["VITE_X"] = "2"

	assert.Equal(t, "1", env.Value("VITE_X"))
	m := env.Map()
	m["VITE_X"] = "3"
	assert.Equal(t, "1", env.Value("VITE_X"))
	assert.Equal(t, 1, env.Len())
}
