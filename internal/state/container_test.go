package state_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestContainer_AllReturnsCopy(t *testing.T) {
	c := state.NewContainer[item]()
	c.Replace(state.SourceLocal, []item{{ID: 1, Name: "a"}})

	got := c.All()
	got[0].Name = "changed"

	assert.Equal(t, "a", c.All()[0].Name)
}

func TestContainer_WatchReceivesSource(t *testing.T) {
	c := state.NewContainer[item]()

	var sources []state.Source

	cancel := c.Watch(func(src state.Source) { sources = append(sources, src) })

	c.Replace(state.SourceRefresh, []item{{ID: 1}})
	c.Update(state.SourceMirror, func(items []item) []item { return append(items, item{ID: 2}) })

	cancel()
	c.Replace(state.SourceLocal, nil)

	assert.Equal(t, []state.Source{state.SourceRefresh, state.SourceMirror}, sources)
}

func TestContainer_WatcherMayReadContainer(t *testing.T) {
	c := state.NewContainer[item]()

	var seen int

	c.Watch(func(state.Source) { seen = c.Len() })
	c.Replace(state.SourceLocal, []item{{ID: 1}, {ID: 2}})

	assert.Equal(t, 2, seen)
}

func TestContainer_ConcurrentUpdates(t *testing.T) {
	c := state.NewContainer[item]()

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Go(func() {
			c.Update(state.SourceLocal, func(items []item) []item { return append(items, item{ID: i}) })
		})
	}

	wg.Wait()
	assert.Equal(t, 50, c.Len())
}

func TestContainer_JSON(t *testing.T) {
	empty := state.NewContainer[item]()

	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	c := state.NewContainer[item]()

	var src state.Source

	c.Watch(func(s state.Source) { src = s })
	require.NoError(t, json.Unmarshal([]byte(`[{"id":7,"name":"x"}]`), c))

	assert.Equal(t, state.SourceDisk, src)
	assert.Equal(t, []item{{ID: 7, Name: "x"}}, c.All())
}

func TestValue(t *testing.T) {
	v := state.NewValue(item{ID: 1})

	var calls int

	v.Watch(func(state.Source) { calls++ })
	v.Set(state.SourceLocal, item{ID: 2})

	assert.Equal(t, 2, v.Get().ID)
	assert.Equal(t, 1, calls)
}
