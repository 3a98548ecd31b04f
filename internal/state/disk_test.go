package state_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

func readEnvelope(t *testing.T, path string) (int, map[string]json.RawMessage) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var env struct {
		Version int                        `json:"version"`
		State   map[string]json.RawMessage `json:"state"`
	}
	require.NoError(t, json.Unmarshal(data, &env))

	return env.Version, env.State
}

func TestDisk_SavesOnChangeAndRestores(t *testing.T) {
	dir := t.TempDir()

	disk, err := state.NewDisk(dir)
	require.NoError(t, err)

	items := state.NewContainer[item]()
	current := state.NewValue(item{})

	stop, err := disk.Bind("test-storage", 3, map[string]state.Persistable{"items": items, "current": current})
	require.NoError(t, err)

	items.Replace(state.SourceLocal, []item{{ID: 1, Name: "a"}})
	current.Set(state.SourceLocal, item{ID: 9})
	stop()

	version, parts := readEnvelope(t, filepath.Join(dir, "test-storage.json"))
	assert.Equal(t, 3, version)
	assert.JSONEq(t, `[{"id":1,"name":"a"}]`, string(parts["items"]))
	assert.JSONEq(t, `{"id":9,"name":""}`, string(parts["current"]))

	restored := state.NewContainer[item]()
	restoredCurrent := state.NewValue(item{})

	_, err = disk.Bind("test-storage", 3, map[string]state.Persistable{"items": restored, "current": restoredCurrent})
	require.NoError(t, err)

	assert.Equal(t, []item{{ID: 1, Name: "a"}}, restored.All())
	assert.Equal(t, 9, restoredCurrent.Get().ID)
}

func TestDisk_VersionMismatchResets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balance-storage.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"version":4,"state":{"items":[{"id":1}]}}`), 0o600))

	disk, err := state.NewDisk(dir)
	require.NoError(t, err)

	items := state.NewContainer[item]()
	items.Replace(state.SourceLocal, []item{{ID: 42}})

	_, err = disk.Bind("balance-storage", 5, map[string]state.Persistable{"items": items})
	require.NoError(t, err)

	assert.Zero(t, items.Len())

	version, parts := readEnvelope(t, path)
	assert.Equal(t, 5, version)
	assert.JSONEq(t, `[]`, string(parts["items"]))
}

func TestDisk_CorruptFileResets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.json"), []byte(`{not json`), 0o600))

	disk, err := state.NewDisk(dir)
	require.NoError(t, err)

	items := state.NewContainer[item]()

	_, err = disk.Bind("k", 1, map[string]state.Persistable{"items": items})
	require.NoError(t, err)
	assert.Zero(t, items.Len())
}

func TestDisk_RestoreDoesNotRewrite(t *testing.T) {
	dir := t.TempDir()

	disk, err := state.NewDisk(dir)
	require.NoError(t, err)

	items := state.NewContainer[item]()

	var sources []state.Source

	items.Watch(func(src state.Source) { sources = append(sources, src) })

	_, err = disk.Bind("k", 1, map[string]state.Persistable{"items": items})
	require.NoError(t, err)

	for _, src := range sources {
		assert.Equal(t, state.SourceDisk, src)
	}
}

func TestDisk_ConcurrentChangesKeepLatest(t *testing.T) {
	dir := t.TempDir()

	disk, err := state.NewDisk(dir)
	require.NoError(t, err)

	items := state.NewContainer[item]()

	stop, err := disk.Bind("k", 1, map[string]state.Persistable{"items": items})
	require.NoError(t, err)
	t.Cleanup(stop)

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Go(func() {
			items.Update(state.SourceLocal, func(all []item) []item {
				return append(all, item{ID: i})
			})
		})
	}

	wg.Wait()

	_, parts := readEnvelope(t, filepath.Join(dir, "k.json"))

	var saved []item
	require.NoError(t, json.Unmarshal(parts["items"], &saved))
	assert.Len(t, saved, 50)
}
