package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveBatch(t *testing.T, ch <-chan []FileEvent) []FileEvent {
	t.Helper()
	select {
	case batch, ok := <-ch:
		require.True(t, ok, "channel closed")
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}

func TestDebouncer_CoalescesRapidEvents(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	// When: several events arrive for two files
	d.Add(FileEvent{Name: "b.csv", Operation: OpModify})
	d.Add(FileEvent{Name: "a.csv", Operation: OpCreate})
	d.Add(FileEvent{Name: "b.csv", Operation: OpModify})

	// Then: one sorted batch with one event per file
	batch := receiveBatch(t, d.Output())
	require.Len(t, batch, 2)
	assert.Equal(t, "a.csv", batch[0].Name)
	assert.Equal(t, OpCreate, batch[0].Operation)
	assert.Equal(t, "b.csv", batch[1].Name)
	assert.Equal(t, OpModify, batch[1].Operation)
}

func TestDebouncer_CreateThenDeleteCancels(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Name: "tmp.csv", Operation: OpCreate})
	d.Add(FileEvent{Name: "tmp.csv", Operation: OpDelete})
	d.Add(FileEvent{Name: "kept.csv", Operation: OpModify})

	batch := receiveBatch(t, d.Output())
	require.Len(t, batch, 1)
	assert.Equal(t, "kept.csv", batch[0].Name)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name        string
		first, next Operation
		want        Operation
		keep        bool
	}{
		{"create then modify", OpCreate, OpModify, OpCreate, true},
		{"create then delete", OpCreate, OpDelete, 0, false},
		{"create then rename", OpCreate, OpRename, 0, false},
		{"delete then create", OpDelete, OpCreate, OpModify, true},
		{"modify then delete", OpModify, OpDelete, OpDelete, true},
		{"modify then modify", OpModify, OpModify, OpModify, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := merge(tt.first, tt.next)
			assert.Equal(t, tt.keep, keep)
			if keep {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDebouncer_StopIsIdempotent(t *testing.T) {
	d := NewDebouncer(time.Second)
	d.Add(FileEvent{Name: "a.csv", Operation: OpCreate})

	d.Stop()
	d.Stop()
	d.Add(FileEvent{Name: "b.csv", Operation: OpCreate})

	_, ok := <-d.Output()
	assert.False(t, ok)
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "CREATE", OpCreate.String())
	assert.Equal(t, "MODIFY", OpModify.String())
	assert.Equal(t, "DELETE", OpDelete.String())
	assert.Equal(t, "RENAME", OpRename.String())
	assert.Equal(t, "UNKNOWN", Operation(42).String())
}
