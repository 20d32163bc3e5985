package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoRegistry() *MethodRegistry {
	registry := NewMethodRegistry()
	registry.Register("echo", func(_ context.Context, params json.RawMessage) (any, *Error) {
		var p map[string]any
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, ErrInvalidParams(err.Error())
		}
		return p, nil
	})
	registry.Register("fail", func(_ context.Context, _ json.RawMessage) (any, *Error) {
		return nil, ErrOracleFailure("synthetic failure")
	})
	return registry
}

func serve(t *testing.T, input string) []Response {
	t.Helper()
	var out bytes.Buffer
	server := NewServer(echoRegistry(), nil)
	server.ServeStdio(strings.NewReader(input), &out)

	var responses []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServer_Echo(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"echo","params":{"msg":"hi"}}`+"\n")
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0].Error)
	assert.Equal(t, map[string]any{"msg": "hi"}, responses[0].Result)
	assert.Equal(t, json.RawMessage("1"), responses[0].ID)
}

func TestServer_MethodNotFound(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":2,"method":"nope"}`+"\n")
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeMethodNotFound, responses[0].Error.Code)
}

func TestServer_ParseError(t *testing.T) {
	responses := serve(t, "{not json\n")
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeParseError, responses[0].Error.Code)
	assert.Equal(t, json.RawMessage("null"), responses[0].ID)
}

func TestServer_NotificationGetsNoResponse(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","method":"echo","params":{"msg":"hi"}}`+"\n")
	assert.Empty(t, responses)
}

func TestServer_WrongVersionRejected(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"1.0","id":3,"method":"echo"}`+"\n")
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeInvalidRequest, responses[0].Error.Code)
}

func TestServer_ApplicationErrorCodePassesThrough(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":4,"method":"fail"}`+"\n")
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeOracleFailure, responses[0].Error.Code)
}

func TestServer_MultipleRequestsOnOneConnection(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"echo","params":{"n":1}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"echo","params":{"n":2}}` + "\n"
	responses := serve(t, input)
	require.Len(t, responses, 2)
	assert.Equal(t, json.RawMessage("1"), responses[0].ID)
	assert.Equal(t, json.RawMessage("2"), responses[1].ID)
}
