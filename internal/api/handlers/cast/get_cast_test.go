package cast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Castcard/internal/core/casts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient implements casts.Client so the real service runs end to end
type mockClient struct {
	err   error
	casts []casts.Cast
	calls int
}

func (m *mockClient) ListThreadCasts(ctx context.Context, q casts.ThreadQuery) ([]casts.Cast, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.casts, nil
}

func newHandler(client casts.Client) *GetCastHandler {
	svc := casts.NewService(client, casts.WithViewOptions(casts.ViewOptions{
		WebBaseURL: "https://warpcast.com",
		Location:   time.UTC,
	}))
	return NewGetCastHandler(svc)
}

func TestHandleGetCast_Success(t *testing.T) {
	combined := 0
	client := &mockClient{casts: []casts.Cast{
		{Hash: "0xwrapper", CastType: casts.CastTypeRootEmbed},
		{
			Hash:                "0x1a2b3c4d5e",
			Text:                "gm",
			Timestamp:           time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC).UnixMilli(),
			Author:              casts.Author{FID: 3, Username: "dwr", DisplayName: "Dan Romero"},
			Reactions:           &casts.Counter{Count: 1234},
			Recasts:             &casts.Counter{Count: 7},
			CombinedRecastCount: &combined,
		},
	}}
	handler := newHandler(client)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cast?url=https://warpcast.com/dwr/0x1a2b", nil)
	w := httptest.NewRecorder()
	handler.HandleGetCast(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, 1, client.calls)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "0x1a2b3c4d5e", body["hash"])
	assert.Equal(t, "https://warpcast.com/dwr/0x1a2b3c4d5e", body["castUrl"])
	assert.Equal(t, "Mar 5, 2024, 2:07 PM", body["timestamp"])
	assert.Equal(t, float64(1234), body["likes"])
	assert.Equal(t, float64(7), body["recasts"])
	assert.Nil(t, body["replies"])
	assert.Nil(t, body["watches"])

	author, ok := body["author"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://warpcast.com/~/profiles/3", author["profileUrl"])
}

func TestHandleGetCast_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		client     *mockClient
		wantStatus int
		wantError  string
		wantCalls  int
	}{
		{
			name:       "no identifier",
			target:     "/api/v1/cast",
			client:     &mockClient{},
			wantStatus: http.StatusBadRequest,
			wantError:  "InvalidRequest",
		},
		{
			name:       "hash without username",
			target:     "/api/v1/cast?hash=0x1",
			client:     &mockClient{},
			wantStatus: http.StatusBadRequest,
			wantError:  "InvalidRequest",
		},
		{
			name:       "empty thread",
			target:     "/api/v1/cast?username=dwr&hash=0x1",
			client:     &mockClient{},
			wantStatus: http.StatusNotFound,
			wantError:  "CastNotFound",
			wantCalls:  1,
		},
		{
			name:       "wrapper only",
			target:     "/api/v1/cast?username=dwr&hash=0x1",
			client:     &mockClient{casts: []casts.Cast{{Hash: "0xw", CastType: casts.CastTypeRootEmbed}}},
			wantStatus: http.StatusNotFound,
			wantError:  "CastNotFound",
			wantCalls:  1,
		},
		{
			name:       "provider failure",
			target:     "/api/v1/cast?username=dwr&hash=0x1",
			client:     &mockClient{err: errors.New("connection reset")},
			wantStatus: http.StatusBadGateway,
			wantError:  "UpstreamError",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newHandler(tt.client)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			handler.HandleGetCast(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, tt.wantCalls, tt.client.calls)
		})
	}
}

func TestHandleGetCast_MethodNotAllowed(t *testing.T) {
	handler := newHandler(&mockClient{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cast?username=dwr&hash=0x1", nil)
	w := httptest.NewRecorder()
	handler.HandleGetCast(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
