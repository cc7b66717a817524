package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, write(&stdout, "", "cream_api.ini", "[steam]\n"))
	assert.Equal(t, "[steam]\n", stdout.String())

	dir := t.TempDir()
	path := filepath.Join(dir, "out.ini")
	require.NoError(t, write(&stdout, path, "cream_api.ini", "[dlc]\n"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[dlc]\n", string(data))

	t.Chdir(dir)
	require.NoError(t, write(&stdout, ".", "depots.csv", "depot_id,name,manifests,os_list\n"))
	data, err = os.ReadFile(filepath.Join(dir, "depots.csv"))
	require.NoError(t, err)
	assert.Equal(t, "depot_id,name,manifests,os_list\n", string(data))
}

func TestRootRegistersCommands(t *testing.T) {
	root := Root()
	for _, name := range []string{"fetch", "export", "watch"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	refresh := root.PersistentFlags().Lookup("refresh")
	require.NotNil(t, refresh)
	assert.Equal(t, "false", refresh.DefValue)
}
