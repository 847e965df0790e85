package assets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/clubportal/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormUploader_Success(t *testing.T) {
	var gotPreset, gotCloud, gotFile, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		gotPreset = r.FormValue("upload_preset")
		gotCloud = r.FormValue("cloud_name")
		f, hdr, err := r.FormFile("file")
		if assert.NoError(t, err) {
			b, _ := io.ReadAll(f)
			gotFile, gotName = string(b), hdr.Filename
		}
		_, _ = io.WriteString(w, `{"secure_url":"https://res.cdn/img/chess.png","public_id":"x"}`)
	}))
	defer srv.Close()

	u := NewFormUploader(srv.URL, "club_management", "campus")
	ref, err := u.Upload(context.Background(), "chess.png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)

	assert.Equal(t, "https://res.cdn/img/chess.png", ref)
	assert.Equal(t, "club_management", gotPreset)
	assert.Equal(t, "campus", gotCloud)
	assert.Equal(t, "PNGDATA", gotFile)
	assert.Equal(t, "chess.png", gotName)
}

func TestFormUploader_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
		msg    string
	}{
		{"rejected with message", http.StatusBadRequest, `{"error":{"message":"Upload preset not found"}}`, client.ErrRejected, "Upload preset not found"},
		{"rejected html", http.StatusBadGateway, `<html>`, client.ErrRejected, ""},
		{"missing secure_url", http.StatusOK, `{"url":"http://x"}`, client.ErrMalformed, ""},
		{"not json", http.StatusOK, `ok`, client.ErrMalformed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			ref, err := NewFormUploader(srv.URL, "p", "").Upload(context.Background(), "a.png", strings.NewReader("x"))
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, ref)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, client.UserMessage(err, ""))
			}
		})
	}
}

func TestFormUploader_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewFormUploader(url, "p", "").Upload(context.Background(), "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, client.ErrTransport)

	_, err = NewFormUploader("", "p", "").Upload(context.Background(), "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, client.ErrTransport)
}
