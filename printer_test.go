package lianke

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PrinterList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/printing/printer_list", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("printerType"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"msg":  "success",
			"data": map[string]any{
				"row": []map[string]any{
					{"hash_id": "abc123", "printerModel": "HP LaserJet"},
					{"hash_id": "def456", "printerModel": "Canon TS3400"},
				},
				"total": 2,
			},
		})
	}))
	defer server.Close()

	client := New("key", "device", "secret", WithBaseURL(server.URL))
	list, err := client.PrinterList(context.Background(), PrinterTypeNetwork)

	require.NoError(t, err)
	require.Len(t, list.Row, 2)
	assert.Equal(t, "abc123", list.Row[0].HashID)
	assert.Equal(t, "HP LaserJet", list.Row[0].Model)
	assert.Equal(t, 2, list.Total)
}

func TestClient_DefaultPrinter(t *testing.T) {
	tests := []struct {
		name    string
		rows    []map[string]any
		want    string
		wantErr error
	}{
		{
			name: "first USB printer wins",
			rows: []map[string]any{
				{"hash_id": "first"},
				{"hash_id": "second"},
			},
			want: "first",
		},
		{
			name:    "empty list",
			rows:    nil,
			wantErr: ErrNoPrinter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Default resolution always asks for USB printers.
				assert.Equal(t, "1", r.URL.Query().Get("printerType"))

				_ = json.NewEncoder(w).Encode(map[string]any{
					"code": 200,
					"msg":  "success",
					"data": map[string]any{"row": tt.rows, "total": len(tt.rows)},
				})
			}))
			defer server.Close()

			client := New("key", "device", "secret", WithBaseURL(server.URL))
			hash, err := client.DefaultPrinter(context.Background())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, hash)
		})
	}
}

func TestClient_PrinterStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/printing/printer_status", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("printerHash"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"msg":  "success",
			"data": map[string]any{"paperOut": false, "coverOpen": true},
		})
	}))
	defer server.Close()

	client := New("key", "device", "secret", WithBaseURL(server.URL))
	status, err := client.PrinterStatus(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, true, status["coverOpen"])
}

func TestClient_PrinterParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/printing/printer_params", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"msg":  "success",
			"data": map[string]any{"dmPaperSize": []any{"9", "11"}},
		})
	}))
	defer server.Close()

	client := New("key", "device", "secret", WithBaseURL(server.URL))
	params, err := client.PrinterParams(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Contains(t, params, "dmPaperSize")
}
