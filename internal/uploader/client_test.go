package uploader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"uploadtest/internal/model"
)

type captured struct {
	auth      string
	fields    map[string][]string
	fileParts []*multipart.Part
	fileBody  []byte
}

func captureServer(t *testing.T, status int, contentType, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{fields: map[string][]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.auth = r.Header.Get("Authorization")
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if !assert.NoError(t, err) {
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			p, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if !assert.NoError(t, err) {
				return
			}
			data, _ := io.ReadAll(p)
			if p.FileName() != "" {
				c.fileParts = append(c.fileParts, p)
				c.fileBody = data
				continue
			}
			c.fields[p.FormName()] = append(c.fields[p.FormName()], string(data))
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func TestClient_Upload(t *testing.T) {
	t.Run("with document", func(t *testing.T) {
		srv, got := captureServer(t, http.StatusOK, "application/json; charset=utf-8", `{"applicationId":"A1"}`)
		c := NewWithHTTPClient(srv.URL, srv.Client(), zaptest.NewLogger(t))

		resp, err := c.Upload(context.Background(), "tok", model.TestApplication(), strings.NewReader("jpeg-bytes"))

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, resp.IsJSON())
		assert.JSONEq(t, `{"applicationId":"A1"}`, string(resp.Body))

		assert.Equal(t, "Bearer tok", got.auth)
		assert.Len(t, got.fields, len(model.FieldNames))
		for _, name := range model.FieldNames {
			require.Len(t, got.fields[name], 1, name)
			assert.NotEmpty(t, got.fields[name][0], name)
		}
		require.Len(t, got.fileParts, 1)
		assert.Equal(t, DocumentField, got.fileParts[0].FormName())
		assert.Equal(t, DocumentFilename, got.fileParts[0].FileName())
		assert.Equal(t, DocumentContentType, got.fileParts[0].Header.Get("Content-Type"))
		assert.Equal(t, []byte("jpeg-bytes"), got.fileBody)
	})

	t.Run("without document", func(t *testing.T) {
		srv, got := captureServer(t, http.StatusUnauthorized, "text/plain", "nope")
		c := NewWithHTTPClient(srv.URL, srv.Client(), nil)

		resp, err := c.Upload(context.Background(), "", model.TestApplication(), nil)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, resp.IsJSON())
		assert.Equal(t, "nope", string(resp.Body))
		assert.Equal(t, "Bearer ", got.auth)
		assert.Empty(t, got.fileParts)
		assert.Len(t, got.fields, len(model.FieldNames))
	})

	t.Run("traced default client", func(t *testing.T) {
		srv, _ := captureServer(t, http.StatusOK, "application/json", `{}`)
		c := New(srv.URL, nil)

		resp, err := c.Upload(context.Background(), "tok", model.TestApplication(), nil)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestClient_UploadConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := NewWithHTTPClient(endpoint, &http.Client{}, nil)
	_, err := c.Upload(context.Background(), "tok", model.TestApplication(), nil)

	require.Error(t, err)
	assert.True(t, IsRequestError(err))
}

func TestClient_UploadCanceledIsNotRequestError(t *testing.T) {
	srv, _ := captureServer(t, http.StatusOK, "application/json", `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewWithHTTPClient(srv.URL, srv.Client(), nil)
	_, err := c.Upload(ctx, "tok", model.TestApplication(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsRequestError(err))
}

func TestClient_UploadDocumentReadError(t *testing.T) {
	c := NewWithHTTPClient("http://127.0.0.1:1", &http.Client{}, nil)

	_, err := c.Upload(context.Background(), "tok", model.TestApplication(), &failingReader{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "build form: copy document: disk gone")
	assert.False(t, IsRequestError(err))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestWriteForm_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	ct, err := WriteForm(&buf, model.TestApplication(), nil)
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)
	mr := multipart.NewReader(&buf, params["boundary"])

	var order []string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		order = append(order, p.FormName())
	}
	assert.Equal(t, model.FieldNames, order)
}
