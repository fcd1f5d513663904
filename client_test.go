package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *canvasClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := newCanvasClient(context.Background(), server.URL+"/", 5*time.Second, testLogger())
	t.Cleanup(client.Close)
	return client
}

func TestFetchRegion(t *testing.T) {
	var query atomic.Value
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/canvas", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		query.Store(r.URL.Query())
		w.Write([]byte(`[{"x":0,"y":0,"color":"#ff0000"},{"x":-3,"y":4,"color":"00ff00"}]`))
	})

	batches := NewQueue[[]GrainRecord]()
	statuses := NewQueue[FetchStatus]()
	client.FetchRegion(regionA, batches, statuses)
	client.Wait()

	q := query.Load().(url.Values)
	assert.Equal(t, []string{"-50"}, q["topLeftX"])
	assert.Equal(t, []string{"50"}, q["topLeftY"])
	assert.Equal(t, []string{"50"}, q["bottomRightX"])
	assert.Equal(t, []string{"-50"}, q["bottomRightY"])

	assert.Equal(t, [][]GrainRecord{{
		{X: 0, Y: 0, Color: "#ff0000"},
		{X: -3, Y: 4, Color: "00ff00"},
	}}, batches.Drain())
	assert.Equal(t, []FetchStatus{successStatus(regionA)}, statuses.Drain())
}

func TestFetchRegionEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	batches := NewQueue[[]GrainRecord]()
	statuses := NewQueue[FetchStatus]()
	client.FetchRegion(regionA, batches, statuses)
	client.Wait()

	batch := batches.Drain()
	require.Len(t, batch, 1)
	assert.Empty(t, batch[0])
	assert.Equal(t, []FetchStatus{successStatus(regionA)}, statuses.Drain())
}

func TestFetchRegionFailures(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"not found": func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"x":0,`))
		},
		"wrong shape": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"x":0,"y":0,"color":"#ffffff"}`))
		},
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, handler)

			batches := NewQueue[[]GrainRecord]()
			statuses := NewQueue[FetchStatus]()
			client.FetchRegion(regionA, batches, statuses)
			client.Wait()

			assert.Empty(t, batches.Drain())
			assert.Equal(t, []FetchStatus{failedStatus()}, statuses.Drain())
		})
	}
}

func TestFetchRegionUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseUrl := server.URL
	server.Close()

	client := newCanvasClient(context.Background(), baseUrl, time.Second, testLogger())
	defer client.Close()

	batches := NewQueue[[]GrainRecord]()
	statuses := NewQueue[FetchStatus]()
	client.FetchRegion(regionA, batches, statuses)
	client.Wait()

	assert.Empty(t, batches.Drain())
	assert.Equal(t, []FetchStatus{failedStatus()}, statuses.Drain())
}

func TestFetchRegionBatchQueueClosed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"x":0,"y":0,"color":"#ff0000"}]`))
	})

	batches := NewQueue[[]GrainRecord]()
	batches.Close()
	statuses := NewQueue[FetchStatus]()
	client.FetchRegion(regionA, batches, statuses)
	client.Wait()

	assert.Equal(t, []FetchStatus{failedStatus()}, statuses.Drain())
}

func TestSubmitEdit(t *testing.T) {
	var edits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		edits.Add(1)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/canvas/pixel", r.URL.Path)
		assert.Equal(t, "*/*", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"x":3,"y":-2,"color":"#00ff00"}`, string(body))

		var edit GrainRecord
		assert.NoError(t, json.Unmarshal(body, &edit))
		json.NewEncoder(w).Encode(edit)
	})

	batches := NewQueue[[]GrainRecord]()
	client.SubmitEdit(GrainRecord{X: 3, Y: -2, Color: "#00ff00"}, batches)
	client.Wait()

	assert.Equal(t, int32(1), edits.Load())
	assert.Equal(t, [][]GrainRecord{{{X: 3, Y: -2, Color: "#00ff00"}}}, batches.Drain())
}

func TestSubmitEditFailure(t *testing.T) {
	var edits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		edits.Add(1)
		http.Error(w, "nope", http.StatusBadRequest)
	})

	batches := NewQueue[[]GrainRecord]()
	client.SubmitEdit(GrainRecord{X: 3, Y: -2, Color: "#00ff00"}, batches)
	client.Wait()

	// no retry, nothing queued
	assert.Equal(t, int32(1), edits.Load())
	assert.Empty(t, batches.Drain())
}

func TestClientClose(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	batches := NewQueue[[]GrainRecord]()
	statuses := NewQueue[FetchStatus]()
	client.FetchRegion(regionA, batches, statuses)
	client.Close()
	client.Wait()

	assert.Empty(t, batches.Drain())
	assert.Equal(t, []FetchStatus{failedStatus()}, statuses.Drain())
}
