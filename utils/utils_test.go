package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nzai/nseq/config"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User-Agent", r.Header.Get("User-Agent"))
		w.Header().Set("X-Origin", r.Header.Get("Origin"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	downloader := NewDownloader(time.Second*5, "nseq-test")
	downloader.Headers = map[string]string{"Origin": "https://nseq.example"}

	request, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	response, err := downloader.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, http.StatusNoContent, response.StatusCode)
	require.Equal(t, "nseq-test", response.Header.Get("X-User-Agent"))
	require.Equal(t, "https://nseq.example", response.Header.Get("X-Origin"))

	// headers set by the caller win
	request, err = http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	request.Header.Set("User-Agent", "custom")

	response, err = downloader.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, "custom", response.Header.Get("X-User-Agent"))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.Log{Level: "debug"})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(-1))

	path := filepath.Join(t.TempDir(), "nseq.log")
	logger, err = NewLogger(config.Log{Level: "warn", File: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "kept")
	require.NotContains(t, string(content), "dropped")

	_, err = NewLogger(config.Log{Level: "loud"})
	require.Error(t, err)
}
