package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadFile struct {
	name        string
	contentType string
	body        string
}

func (s *testServer) upload(t *testing.T, files ...uploadFile) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.body))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/content/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestUpload_RoutesByType(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.upload(t,
		uploadFile{"cover.png", "image/png", "png-bytes"},
		uploadFile{"report.docx", "application/octet-stream", "doc-bytes"},
	)
	require.Equal(t, 200, w.Code, w.Body.String())

	var result struct {
		Uploaded []struct {
			Name string `json:"name"`
			Size int64  `json:"size"`
			Path string `json:"path"`
		} `json:"uploaded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Uploaded, 2)
	assert.Regexp(t, `^photos/\d+_cover\.png$`, result.Uploaded[0].Path)
	assert.Regexp(t, `^documents/\d+_report\.docx$`, result.Uploaded[1].Path)
	assert.Equal(t, int64(9), result.Uploaded[0].Size)
}

func TestUpload_UnsupportedType(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.upload(t, uploadFile{"firmware.bin", "application/octet-stream", "x"})
	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported upload type")
	assert.Contains(t, w.Body.String(), "firmware.bin")
}

func TestUpload_TooManyFiles(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	// The test router caps uploads at 3 files.
	w := server.upload(t,
		uploadFile{"a.png", "image/png", "x"},
		uploadFile{"b.png", "image/png", "x"},
		uploadFile{"c.png", "image/png", "x"},
		uploadFile{"d.png", "image/png", "x"},
	)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "too many files")
}

func TestUpload_NoFiles(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.upload(t)
	assert.Equal(t, 400, w.Code)
}

func TestFiles_ListsByArea(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	server.upload(t, uploadFile{"notes.txt", "text/plain", "hello"})

	w := server.request(t, "GET", "/content/files", "")
	require.Equal(t, 200, w.Code)

	var listing map[string][]struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing["documents"], 1)
	assert.Equal(t, int64(5), listing["documents"][0].Size)
	assert.Empty(t, listing["videos"])
	assert.Empty(t, listing["photos"])
}

func TestDownload_RoundTrip(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.upload(t, uploadFile{"notes.txt", "text/plain", "hello"})
	require.Equal(t, 200, w.Code)
	var result struct {
		Uploaded []struct {
			Path string `json:"path"`
		} `json:"uploaded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Uploaded, 1)

	w = server.request(t, "GET", "/content/download?path="+url.QueryEscape(result.Uploaded[0].Path), "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "hello", w.Body.String())
}

func TestDownload_Missing(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.request(t, "GET", "/content/download?path=documents%2Fabsent.pdf", "")
	assert.Equal(t, 404, w.Code)

	w = server.request(t, "GET", "/content/download", "")
	assert.Equal(t, 400, w.Code)
}

func TestDownload_RejectsTraversal(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.request(t, "GET", "/content/download?path="+url.QueryEscape("../secret"), "")
	assert.Equal(t, 404, w.Code)
}
