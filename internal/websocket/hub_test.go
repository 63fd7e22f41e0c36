package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestHub_RegisterAndStop(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()

	client := NewClient(hub, nil, nil)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	// The registration greeting lands in the client's send buffer.
	select {
	case raw := <-client.send:
		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, TypeConnection, msg["type"])
	case <-time.After(2 * time.Second):
		t.Fatal("no connection message received")
	}

	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	client := NewClientWithTrace(hub, nil, "trace-1", nil)
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	<-client.send // discard the connection greeting

	hub.BroadcastWithTrace(TypeAnalysisComplete, map[string]int{"rules": 3}, "trace-1")

	select {
	case raw := <-client.send:
		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, TypeAnalysisComplete, msg["type"])
		assert.Equal(t, "trace-1", msg["trace_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast not delivered")
	}
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	// Must not block or panic with nobody listening.
	hub.Broadcast(TypeAnalysisStarted, map[string]string{"run_id": "r1"})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_StartAndStopAreIdempotent(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	hub.Start()
	hub.Stop()
	hub.Stop()
}

func TestHub_BroadcastAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 32; i++ {
			hub.Broadcast(TypeError, map[string]string{"error": "late"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked after stop")
	}
}
