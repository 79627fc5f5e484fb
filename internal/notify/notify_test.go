package notify

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DrainInOrder(t *testing.T) {
	q := New(10, zerolog.Nop())
	q.Success("Login successful")
	q.Error("Failed to dispense some medicines")
	q.Info("Logged out")

	got := q.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, Success, got[0].Kind)
	assert.Equal(t, Error, got[1].Kind)
	assert.Equal(t, "Logged out", got[2].Message)
	assert.Empty(t, q.Drain())
}

func TestQueue_DropsOldest(t *testing.T) {
	q := New(2, zerolog.Nop())
	q.Info("a")
	q.Info("b")
	q.Info("c")

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Message)
	assert.Equal(t, "c", got[1].Message)
}

func TestQueue_LogsEveryNotification(t *testing.T) {
	var buf bytes.Buffer
	q := New(10, zerolog.New(&buf))
	q.Error("Failed to upload lab report")

	assert.Contains(t, buf.String(), "Failed to upload lab report")
	assert.Contains(t, buf.String(), `"kind":"error"`)
}

func TestQueue_Concurrent(t *testing.T) {
	q := New(1000, zerolog.Nop())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Success("ok")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, q.Len())
}
