package hume

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient points a client at a test server with fast polling.
func newTestClient(serverURL string) *Client {
	c := NewClient(&Config{APIKey: "test-key"})
	c.baseURL = serverURL
	c.pollInterval = time.Millisecond
	c.maxPolls = 5
	return c
}

// writeTestAudio creates a small placeholder audio file.
func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFFfake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeFile(t *testing.T) {
	var polls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Hume-Api-Key"); got != "test-key" {
			t.Errorf("api key header = %q, want %q", got, "test-key")
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/jobs":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parsing multipart form: %v", err)
			}
			w.Write([]byte(`{"job_id":"job-123"}`))

		case r.Method == http.MethodGet && r.URL.Path == "/jobs/job-123":
			// First poll is still queued, second completes.
			if polls.Add(1) == 1 {
				w.Write([]byte(`{"state":{"status":"QUEUED"}}`))
			} else {
				w.Write([]byte(`{"state":{"status":"COMPLETED"}}`))
			}

		case r.Method == http.MethodGet && r.URL.Path == "/jobs/job-123/predictions":
			w.Write([]byte(`[{"results":{"predictions":[{"models":{"prosody":{"grouped_predictions":[{"predictions":[
				{"time":{"begin":0,"end":2.5},"emotions":[{"name":"Joy","score":0.84},{"name":"Calm","score":0.61}]},
				{"time":{"begin":2.5,"end":5},"emotions":[{"name":"Joy","score":0.62}]}
			]}]}}}]}}]`))

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	predictions, err := client.AnalyzeFile(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("AnalyzeFile() error = %v", err)
	}

	if len(predictions) != 2 {
		t.Fatalf("got %d predictions, want 2", len(predictions))
	}
	if predictions[0].Emotions[0].Name != "Joy" || predictions[0].Emotions[0].Score != 0.84 {
		t.Errorf("first emotion = %+v, want Joy/0.84", predictions[0].Emotions[0])
	}
	if predictions[1].Time.Begin != 2.5 {
		t.Errorf("second prediction begin = %v, want 2.5", predictions[1].Time.Begin)
	}
	if got := polls.Load(); got != 2 {
		t.Errorf("status polled %d times, want 2", got)
	}
}

func TestAnalyzeFileJobFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/jobs":
			w.Write([]byte(`{"job_id":"job-err"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/jobs/job-err":
			w.Write([]byte(`{"state":{"status":"FAILED","message":"unsupported codec"}}`))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.AnalyzeFile(context.Background(), writeTestAudio(t))
	if !errors.Is(err, ErrJobFailed) {
		t.Errorf("AnalyzeFile() error = %v, want ErrJobFailed", err)
	}
}

func TestStartJobInvalidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.StartJob(context.Background(), writeTestAudio(t))
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Errorf("StartJob() error = %v, want ErrInvalidAPIKey", err)
	}
}

func TestDoRequestRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"job_id":"job-retry"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	// Shrink the backoff ladder indirectly by using a context deadline large
	// enough for one 1s retry.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	jobID, err := client.StartJob(ctx, writeTestAudio(t))
	if err != nil {
		t.Fatalf("StartJob() error = %v", err)
	}
	if jobID != "job-retry" {
		t.Errorf("jobID = %q, want %q", jobID, "job-retry")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
}
