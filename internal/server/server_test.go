package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/wall-takeoff-mcp/internal/detection"
)

func TestNew(t *testing.T) {
	s := New(nil)
	require.NotNil(t, s)
	assert.NotNil(t, s.cache, "New() did not initialize cache")
	assert.NotNil(t, s.pipeline, "New(nil) did not create a default pipeline")
	assert.GreaterOrEqual(t, s.batchLimit, 1)
}

func TestNew_UsesGivenPipeline(t *testing.T) {
	cfg := detection.DefaultConfig()
	cfg.ScanStepPx = 1
	p, err := detection.NewPipeline(cfg)
	require.NoError(t, err)

	s := New(p)
	assert.Same(t, p, s.pipeline)
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			require.NoError(t, json.Unmarshal([]byte(tt.json), &req))

			assert.Equal(t, tt.wantID, req.ID)
			assert.Equal(t, tt.wantMethod, req.Method)
		})
	}
}

func TestErrorResponse_OmitsEmptyData(t *testing.T) {
	s := New(nil)
	data, err := json.Marshal(s.errorResponse(1, codeMethodNotFound, "Method not found: x", ""))
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"data"`, "empty data should be omitted")
	assert.NotContains(t, string(data), `"result"`, "error response should not carry a result")
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "ping-1",
		Method:  "ping",
	}

	resp := s.handleRequest(context.Background(), req)

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	assert.Equal(t, "ping-1", resp.ID)
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	}

	// Notifications don't get responses
	assert.Nil(t, s.handleRequest(context.Background(), req))
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "nonexistent/method",
	}

	resp := s.handleRequest(context.Background(), req)

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error, "Expected error for unknown method")
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestHandleInitialize(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "init-1",
	}

	resp := s.handleInitialize(req)

	assert.Equal(t, "init-1", resp.ID)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "Result should be a map")
	assert.Equal(t, "2024-11-05", result["protocolVersion"])

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	require.True(t, ok, "serverInfo should be a map")
	assert.Equal(t, "wall-takeoff-mcp", serverInfo["name"])
	assert.Equal(t, Version, serverInfo["version"])
}

func TestServe_Session(t *testing.T) {
	s := New(nil)
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json at all`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"bogus"}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"plan_wall_types"}}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(in), &out))

	var responses []MCPResponse
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var resp MCPResponse
		require.NoError(t, json.Unmarshal(sc.Bytes(), &resp), "bad response line %q", sc.Text())
		responses = append(responses, resp)
	}

	// The notification, the blank line and the garbage line produce nothing.
	require.Len(t, responses, 4)
	wantIDs := []float64{1, 2, 3, 4}
	for i, resp := range responses {
		assert.Equal(t, wantIDs[i], resp.ID, "response %d", i)
	}
	if assert.NotNil(t, responses[2].Error) {
		assert.Equal(t, -32601, responses[2].Error.Code)
	}
	assert.Nil(t, responses[3].Error, "plan_wall_types without arguments failed")
}

func TestServe_CancelledContext(t *testing.T) {
	s := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len(), "expected no output, got %q", out.String())
}
