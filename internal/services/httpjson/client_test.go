package httpjson

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Data    []string `json:"data"`
	HasMore bool     `json:"has_more"`
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, "upstream", c.config.Service)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "cardsheet-api/1.0", c.config.UserAgent)
	assert.Nil(t, c.rateLimiter)

	limited := NewClient(Config{RequestsPerSecond: 10, BurstSize: 2})
	require.NotNil(t, limited.rateLimiter)
	assert.Equal(t, 2, limited.rateLimiter.Burst())
}

func TestGetJSON(t *testing.T) {
	const body = `{"data": ["a", "b"], "has_more": true}`

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
		check   func(t *testing.T, err error, p payload)
	}{
		{
			name: "plain json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			},
			check: func(t *testing.T, err error, p payload) {
				require.NoError(t, err)
				assert.Equal(t, []string{"a", "b"}, p.Data)
				assert.True(t, p.HasMore)
			},
		},
		{
			name: "gzip encoded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var buf bytes.Buffer
				gz := gzip.NewWriter(&buf)
				_, _ = gz.Write([]byte(body))
				_ = gz.Close()
				w.Header().Set("Content-Encoding", "gzip")
				_, _ = w.Write(buf.Bytes())
			},
			check: func(t *testing.T, err error, p payload) {
				require.NoError(t, err)
				assert.Len(t, p.Data, 2)
			},
		},
		{
			name: "brotli encoded",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var buf bytes.Buffer
				br := brotli.NewWriter(&buf)
				_, _ = br.Write([]byte(body))
				_ = br.Close()
				w.Header().Set("Content-Encoding", "br")
				_, _ = w.Write(buf.Bytes())
			},
			check: func(t *testing.T, err error, p payload) {
				require.NoError(t, err)
				assert.Len(t, p.Data, 2)
			},
		},
		{
			name: "not found carries body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"object":"error","details":"Your query didn't match any cards."}`))
			},
			wantErr: "status 404",
			check: func(t *testing.T, err error, p payload) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusNotFound, se.StatusCode)
				assert.Contains(t, se.Body, "didn't match any cards")
				assert.False(t, errors.Is(err, ErrRateLimited))
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: "status 429",
			check: func(t *testing.T, err error, p payload) {
				assert.True(t, errors.Is(err, ErrRateLimited))
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{invalid json}"))
			},
			wantErr: "decode response",
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantErr: "decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient(Config{Service: "test"})

			var p payload
			err := c.GetJSON(context.Background(), server.URL, &p)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, err, p)
			}
		})
	}
}

func TestGetJSON_RequestHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(Config{UserAgent: "cardsheet-test/0.1"})
	var out map[string]any
	require.NoError(t, c.GetJSON(context.Background(), server.URL, &out))

	assert.Equal(t, "cardsheet-test/0.1", got.Get("User-Agent"))
	assert.Contains(t, got.Get("Accept"), "application/json")
	assert.Equal(t, "gzip, br", got.Get("Accept-Encoding"))
}

func TestGetJSON_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(Config{Timeout: time.Second})
	var out map[string]any
	err := c.GetJSON(context.Background(), url, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http request")
}

func TestGetJSON_RateLimiterHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(Config{RequestsPerSecond: 0.01, BurstSize: 1})

	var out map[string]any
	require.NoError(t, c.GetJSON(context.Background(), server.URL, &out))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.GetJSON(ctx, server.URL, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestDecodedBody(t *testing.T) {
	const body = `{"data": [], "has_more": false}`

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, _ = w.Write([]byte(body))
	require.NoError(t, w.Close())

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	_, _ = bw.Write([]byte(body))
	require.NoError(t, bw.Close())

	tests := []struct {
		name     string
		encoding string
		raw      []byte
	}{
		{name: "identity", raw: []byte(body)},
		{name: "gzip", encoding: "gzip", raw: gz.Bytes()},
		{name: "brotli", encoding: "BR", raw: br.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := &trackingBody{Reader: bytes.NewReader(tt.raw)}
			resp := &http.Response{Header: http.Header{}, Body: orig}
			if tt.encoding != "" {
				resp.Header.Set("Content-Encoding", tt.encoding)
			}

			reader, err := decodedBody(resp)
			require.NoError(t, err)

			got, err := io.ReadAll(reader)
			require.NoError(t, err)
			assert.JSONEq(t, body, string(got))

			require.NoError(t, reader.Close())
			assert.False(t, orig.closed, "decoder close must leave the response body to the caller")
		})
	}
}

func TestDecodedBody_BadGzipHeader(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"gzip"}},
		Body:   io.NopCloser(bytes.NewReader([]byte("not gzip"))),
	}

	_, err := decodedBody(resp)
	require.Error(t, err)
}
