package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	path := filepath.Join(dir, "config.yaml")
	content := "log_level: error\nhistory_db: " + filepath.Join(dir, "history.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "--config", writeConfig(t, t.TempDir()), "version")
	require.NoError(t, err)
	assert.Equal(t, "Postman Rewrite v"+Version+"\n", out)
}

func TestReplaceAndHistoryCommands(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir)

	collectionPath := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(collectionPath, []byte(`{
  "info": {"name": "api"},
  "item": [{"name": "folder", "item": [{"name": "GET /users/7", "request": {
    "method": "GET",
    "header": [{"key": "Content-Type", "value": "text/plain"}],
    "url": {"raw": "http://a.com/users/7", "host": ["a", "com"], "path": ["users", "7"]}
  }}]}]
}`), 0644))
	rulesPath := filepath.Join(dir, "rules.json")
	require.NoError(t, os.WriteFile(rulesPath, []byte(`{
  "headers": [{"name": "content-type", "newValue": "application/json"}],
  "host": {"before": "a.com", "after": "b.com"},
  "pathReplacements": [{"before": "7", "after": ":userId"}]
}`), 0644))
	outputPath := filepath.Join(dir, "out.json")

	out, err := execute(t, "--config", configPath, "replace", collectionPath, "-r", rulesPath, "-o", outputPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Collection: api (1 requests)")
	assert.Contains(t, out, "Replacements: headers, host, pathReplacements")

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	req := gjson.GetBytes(data, "item.0.item.0")
	assert.Equal(t, "application/json", req.Get("request.header.0.value").String())
	assert.Equal(t, "http://b.com/users/:userId", req.Get("request.url.raw").String())
	assert.Equal(t, "b", req.Get("request.url.host.0").String())
	assert.Equal(t, "GET /users/:userId", req.Get("name").String())

	out, err = execute(t, "--config", configPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "[ok]")
	assert.Contains(t, out, "Collection: api (1 requests)")
}

func TestConfigSetCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, dir)

	_, err := execute(t, "--config", configPath, "config", "set", "pretty", "true")
	require.NoError(t, err)

	out, err := execute(t, "--config", configPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Pretty: true")

	out, err = execute(t, "--config", configPath, "config", "set", "unknown_key", "x")
	assert.Error(t, err)
	assert.NotContains(t, out, "Error:")
}
