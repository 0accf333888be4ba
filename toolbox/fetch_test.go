package toolbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestToolbox_fetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 content"))
	}))
	defer server.Close()

	tb := New(zap.NewNop())
	doc, err := tb.fetchDocument(context.Background(), server.URL+"/files/report.pdf")

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.MIMEType)
	assert.Equal(t, []byte("%PDF-1.4 content"), doc.Data)
}

func TestToolbox_fetchDocument_fallbackFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	tb := New(zap.NewNop())
	doc, err := tb.fetchDocument(context.Background(), server.URL+"/")

	require.NoError(t, err)
	assert.Equal(t, fallbackFilename, doc.Filename)
	assert.NotEmpty(t, doc.MIMEType)
}

func TestToolbox_fetchDocument_failures(t *testing.T) {
	tests := []struct {
		name        string
		setupURL    func() string
		errContains string
	}{
		{
			name: "non-success status",
			setupURL: func() string {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				}))
				t.Cleanup(server.Close)
				return server.URL + "/missing.pdf"
			},
			errContains: "unexpected status",
		},
		{
			name: "connection refused",
			setupURL: func() string {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
				url := server.URL
				server.Close()
				return url + "/gone.pdf"
			},
			errContains: "downloading job file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := New(zap.NewNop())
			doc, err := tb.fetchDocument(context.Background(), tt.setupURL())

			assert.Nil(t, doc)
			var fault *Fault
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, FaultFetch, fault.Kind)
			assert.Contains(t, fault.Msg, tt.errContains)
		})
	}
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "menu.docx")
	require.NoError(t, os.WriteFile(filePath, []byte("doc bytes"), 0o644))

	doc, err := readDocument(filePath)

	require.NoError(t, err)
	assert.Equal(t, "menu.docx", doc.Filename)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		doc.MIMEType)
	assert.Equal(t, []byte("doc bytes"), doc.Data)
}

func TestReadDocument_missingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pdf")

	doc, err := readDocument(missing)

	assert.Nil(t, doc)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, FaultNotFound, fault.Kind)
	assert.Contains(t, fault.Msg, missing)
}

func TestResolveMIMEType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "application/pdf"},
		{"sheet.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"photo.jpeg", "image/jpeg"},
		{"mystery.zzz", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveMIMEType(tt.filename))
		})
	}
}

func TestURLFilename(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/files/report.pdf", "report.pdf"},
		{"https://example.com/files/report.pdf?sig=abc", "report.pdf"},
		{"https://example.com/", fallbackFilename},
		{"https://example.com", fallbackFilename},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, urlFilename(tt.url))
		})
	}
}
