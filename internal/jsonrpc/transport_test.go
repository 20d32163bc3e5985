package jsonrpc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_ReadRequestEOF(t *testing.T) {
	tr := NewTransport(strings.NewReader(""), io.Discard)
	_, _, err := tr.ReadRequest()
	require.ErrorIs(t, err, io.EOF)
}

func TestTransport_OversizedFrameRejected(t *testing.T) {
	frame := `{"jsonrpc":"2.0","id":1,"method":"document.evaluate","params":{"document":"` +
		strings.Repeat("a", MaxFrameBytes) + `"}}` + "\n"
	tr := NewTransport(strings.NewReader(frame), io.Discard)

	_, _, err := tr.ReadRequest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request frame exceeds")
}

func TestTransport_RawBytesStableAcrossReads(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"echo"}` + "\n" +
		`{"jsonrpc":"2.0","method":"echo"}` + "\n"
	tr := NewTransport(strings.NewReader(input), io.Discard)

	_, firstRaw, err := tr.ReadRequest()
	require.NoError(t, err)
	_, _, err = tr.ReadRequest()
	require.NoError(t, err)

	// The first frame's bytes must survive the second read.
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(firstRaw, &obj))
	assert.Contains(t, obj, "id")
}

func TestServer_OversizedFrameGetsParseError(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"echo","params":{"pad":"` +
		strings.Repeat("x", MaxFrameBytes) + `"}}` + "\n"
	responses := serve(t, input)
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeParseError, responses[0].Error.Code)
	assert.Contains(t, fmt.Sprint(responses[0].Error.Data), "request frame exceeds")
}
