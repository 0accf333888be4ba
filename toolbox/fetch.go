package toolbox

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	lianke "github.com/liankenet/lianke-go"
)

// Filename used when the URL carries no usable path segment.
const fallbackFilename = "document.pdf"

// Extension fallback for types the platform mime table may not know.
var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".txt":  "text/plain",
}

// fetchDocument downloads the job file from a caller-supplied URL. Transport
// failures and non-success statuses surface as fetch faults; retrying is the
// caller's concern.
func (t *Toolbox) fetchDocument(ctx context.Context, fileURL string) (*lianke.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, faultf(FaultFetch, "downloading job file: %v", err)
	}

	resp, err := t.fetchClient.Do(req)
	if err != nil {
		return nil, faultf(FaultFetch, "downloading job file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, faultf(FaultFetch, "downloading job file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faultf(FaultFetch, "downloading job file: %v", err)
	}

	filename := urlFilename(fileURL)
	return &lianke.Document{
		Filename: filename,
		MIMEType: resolveMIMEType(filename),
		Data:     data,
	}, nil
}

// readDocument reads the job file from local storage. A missing path and a
// failed read are distinct conditions but both stay caller-visible failures.
func readDocument(filePath string) (*lianke.Document, error) {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		return nil, faultf(FaultNotFound, "file not found: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, faultf(FaultFetch, "reading file: %v", err)
	}

	filename := filepath.Base(filePath)
	return &lianke.Document{
		Filename: filename,
		MIMEType: resolveMIMEType(filename),
		Data:     data,
	}, nil
}

// urlFilename derives a filename from the URL's final path segment.
func urlFilename(fileURL string) string {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return fallbackFilename
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return fallbackFilename
	}
	return name
}

// resolveMIMEType guarantees a non-empty type for the multipart attachment:
// platform mime table first, then the fixed extension table, then the generic
// binary stream type.
func resolveMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}
	if mimeType, found := extensionTypes[ext]; found {
		return mimeType
	}
	return "application/octet-stream"
}
