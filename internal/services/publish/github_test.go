package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
)

// newStubService points a publish service at a stub GitHub API.
func newStubService(t *testing.T, handler http.Handler) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return NewServiceWithClient(client, &common.PublishConfig{
		Owner:         "someone",
		Repo:          "health-charts",
		CommitMessage: "Update health tracking charts",
	}, arbor.NewLogger())
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewService_RequiresTokenAndRepo(t *testing.T) {
	_, err := NewService(&common.PublishConfig{Owner: "o", Repo: "r"}, arbor.NewLogger())
	assert.Error(t, err)

	_, err = NewService(&common.PublishConfig{Token: "tok"}, arbor.NewLogger())
	assert.Error(t, err)

	svc, err := NewService(&common.PublishConfig{Token: "tok", Owner: "o", Repo: "r"}, arbor.NewLogger())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestUploadFile_CreatesWhenMissing(t *testing.T) {
	var createdPut bool

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/someone/health-charts/contents/chart.png", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			var body struct {
				Message string `json:"message"`
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Update health tracking charts", body.Message)
			assert.NotEmpty(t, body.Content)
			assert.Empty(t, body.SHA)
			createdPut = true
			w.Write([]byte(`{"content":{"sha":"newsha"}}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	service := newStubService(t, mux)
	local := writeTempFile(t, "chart.png", "png-bytes")

	require.NoError(t, service.UploadFile(context.Background(), "chart.png", local))
	assert.True(t, createdPut)
}

func TestUploadFile_UpdatesWithExistingSHA(t *testing.T) {
	var updatedPut bool

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/someone/health-charts/contents/chart.png", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"type":"file","name":"chart.png","path":"chart.png","sha":"oldsha"}`))
		case http.MethodPut:
			var body struct {
				SHA string `json:"sha"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "oldsha", body.SHA)
			updatedPut = true
			w.Write([]byte(`{"content":{"sha":"newsha"}}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	service := newStubService(t, mux)
	local := writeTempFile(t, "chart.png", "png-bytes-v2")

	require.NoError(t, service.UploadFile(context.Background(), "chart.png", local))
	assert.True(t, updatedPut)
}

func TestUploadFiles_ContinuesAfterFailure(t *testing.T) {
	var goodUploaded bool

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/someone/health-charts/contents/bad.png", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/repos/someone/health-charts/contents/good.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		goodUploaded = true
		w.Write([]byte(`{"content":{"sha":"newsha"}}`))
	})

	service := newStubService(t, mux)
	bad := writeTempFile(t, "bad.png", "x")
	good := writeTempFile(t, "good.png", "y")

	err := service.UploadFiles(context.Background(), bad, good)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 uploads failed")
	assert.True(t, goodUploaded)
}

func TestUploadFile_MissingLocalFile(t *testing.T) {
	service := newStubService(t, http.NewServeMux())
	err := service.UploadFile(context.Background(), "chart.png", "/nonexistent/chart.png")
	assert.Error(t, err)
}
