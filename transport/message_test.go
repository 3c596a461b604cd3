package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name       string
		id         RequestID
		method     string
		params     interface{}
		wantParams string
	}{
		{
			name:       "struct params marshaled",
			id:         int64(1),
			method:     "tools/list",
			params:     map[string]string{"cursor": "abc"},
			wantParams: `{"cursor":"abc"}`,
		},
		{
			name:       "raw bytes pass through",
			id:         int64(2),
			method:     "ping",
			params:     []byte(`{"raw":true}`),
			wantParams: `{"raw":true}`,
		},
		{
			name:       "nil params",
			id:         int64(3),
			method:     "ping",
			params:     nil,
			wantParams: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.id, tt.method, tt.params)
			assert.NoError(t, err)
			assert.Equal(t, Version, req.Jsonrpc)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.id, req.Id)
			assert.Equal(t, tt.wantParams, string(req.Params))
		})
	}
}

func TestNewNotification(t *testing.T) {
	n, err := NewNotification("notifications/initialized", nil)
	assert.NoError(t, err)
	assert.Equal(t, Version, n.Jsonrpc)
	assert.Equal(t, "notifications/initialized", n.Method)
	assert.Empty(t, n.Params)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(int64(7), MethodNotFound, "unknown method", nil)
	assert.Equal(t, int64(7), resp.Id)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, MethodNotFound, resp.Error.Code)
	assert.Equal(t, "unknown method", resp.Error.Message)
	assert.Nil(t, resp.Result)
}

func TestNewResultResponse(t *testing.T) {
	resp := NewResultResponse(int64(7), []byte(`{"ok":true}`))
	assert.Equal(t, int64(7), resp.Id)
	assert.Nil(t, resp.Error)
	assert.Equal(t, `{"ok":true}`, string(resp.Result))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(map[string]int{"a": 1})
	assert.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}
