package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRuntime is a minimal stand-in for the Ollama HTTP API
type fakeRuntime struct {
	models       []string
	generateFn   func(req generateRequest) (int, any)
	pullStatus   int
	pullCount    atomic.Int32
	generateHits atomic.Int32
}

func (f *fakeRuntime) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tags", func(w http.ResponseWriter, _ *http.Request) {
		type model struct {
			Name string `json:"name"`
		}
		resp := struct {
			Models []model `json:"models"`
		}{}
		for _, m := range f.models {
			resp.Models = append(resp.Models, model{Name: m})
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("POST /api/generate", func(w http.ResponseWriter, r *http.Request) {
		f.generateHits.Add(1)
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		status, body := f.generateFn(req)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("POST /api/pull", func(w http.ResponseWriter, r *http.Request) {
		f.pullCount.Add(1)
		var req pullRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		status := f.pullStatus
		if status == 0 {
			status = http.StatusOK
		}
		if status == http.StatusOK {
			f.models = append(f.models, req.Name)
		}
		w.WriteHeader(status)
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeRuntime) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop()), srv
}

func okGenerate(response string) func(generateRequest) (int, any) {
	return func(generateRequest) (int, any) {
		return http.StatusOK, generateResponse{Response: response, Done: true}
	}
}

func TestCheckAvailability(t *testing.T) {
	f := &fakeRuntime{models: []string{"llama3:latest", "mistral:7b"}}
	client, _ := newTestClient(t, f)

	assert.False(t, client.Connected(), "fresh client starts disconnected")
	assert.True(t, client.CheckAvailability(context.Background()))
	assert.True(t, client.Connected())
	assert.Equal(t, []string{"llama3:latest", "mistral:7b"}, client.Models())
}

func TestCheckAvailabilityNeverErrors(t *testing.T) {
	client := New("http://127.0.0.1:1", time.Second, zap.NewNop())
	assert.False(t, client.CheckAvailability(context.Background()))
	assert.False(t, client.Connected())
}

func TestHasModel(t *testing.T) {
	f := &fakeRuntime{models: []string{"llama3:latest"}}
	client, _ := newTestClient(t, f)
	require.True(t, client.CheckAvailability(context.Background()))

	assert.True(t, client.HasModel("llama3:latest"), "exact tag matches")
	assert.True(t, client.HasModel("llama3"), "bare name matches any revision")
	assert.False(t, client.HasModel("mistral"))
}

func TestGenerate(t *testing.T) {
	var seen generateRequest
	f := &fakeRuntime{
		models: []string{"llama3:latest"},
		generateFn: func(req generateRequest) (int, any) {
			seen = req
			return http.StatusOK, generateResponse{Response: `{"ok":true}`, Done: true}
		},
	}
	client, _ := newTestClient(t, f)

	out, err := client.Generate(context.Background(), "llama3:latest", "hello", Options{
		Temperature: 0.1,
		NumPredict:  256,
		JSONFormat:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, "llama3:latest", seen.Model)
	assert.Equal(t, "hello", seen.Prompt)
	assert.False(t, seen.Stream)
	assert.Equal(t, "json", seen.Format)
	assert.InDelta(t, 0.1, seen.Options["temperature"], 1e-9)
	assert.EqualValues(t, 256, seen.Options["num_predict"])
}

func TestGenerateReconnectsWhenDisconnected(t *testing.T) {
	f := &fakeRuntime{models: []string{"llama3"}, generateFn: okGenerate("hi")}
	client, _ := newTestClient(t, f)

	// No prior CheckAvailability call: Generate must probe on its own.
	out, err := client.Generate(context.Background(), "llama3", "hello", Options{})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.True(t, client.Connected())
}

func TestGenerateServiceUnavailable(t *testing.T) {
	client := New("http://127.0.0.1:1", time.Second, zap.NewNop())

	_, err := client.Generate(context.Background(), "llama3", "hello", Options{})
	var unavailErr *ServiceUnavailableError
	require.ErrorAs(t, err, &unavailErr)
}

func TestGeneratePullsMissingModel(t *testing.T) {
	f := &fakeRuntime{models: []string{"other"}, generateFn: okGenerate("hi")}
	client, _ := newTestClient(t, f)

	out, err := client.Generate(context.Background(), "llama3", "hello", Options{})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.EqualValues(t, 1, f.pullCount.Load())
	assert.True(t, client.HasModel("llama3"), "catalog refreshed after pull")
}

func TestGenerateModelUnavailable(t *testing.T) {
	f := &fakeRuntime{
		models:     []string{"other"},
		pullStatus: http.StatusInternalServerError,
		generateFn: okGenerate("unused"),
	}
	client, _ := newTestClient(t, f)

	_, err := client.Generate(context.Background(), "llama3", "hello", Options{})
	var modelErr *ModelUnavailableError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, "llama3", modelErr.Model)
	assert.EqualValues(t, 0, f.generateHits.Load(), "no generation attempted for unpullable model")
}

func TestGenerateErrorStatus(t *testing.T) {
	f := &fakeRuntime{
		models: []string{"llama3"},
		generateFn: func(generateRequest) (int, any) {
			return http.StatusInternalServerError, map[string]string{"error": "model crashed"}
		},
	}
	client, _ := newTestClient(t, f)

	_, err := client.Generate(context.Background(), "llama3", "hello", Options{})
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, http.StatusInternalServerError, genErr.StatusCode)
}

func TestGenerateWithRetryRecovers(t *testing.T) {
	var calls atomic.Int32
	f := &fakeRuntime{
		models: []string{"llama3"},
		generateFn: func(generateRequest) (int, any) {
			if calls.Add(1) < 3 {
				return http.StatusInternalServerError, map[string]string{"error": "busy"}
			}
			return http.StatusOK, generateResponse{Response: "recovered", Done: true}
		},
	}
	client, _ := newTestClient(t, f)

	out, err := client.GenerateWithRetry(context.Background(), "llama3", "hello", Options{}, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGenerateWithRetryExhaustsToFinalError(t *testing.T) {
	f := &fakeRuntime{
		models: []string{"llama3"},
		generateFn: func(generateRequest) (int, any) {
			return http.StatusBadGateway, map[string]string{"error": "down"}
		},
	}
	client, _ := newTestClient(t, f)

	_, err := client.GenerateWithRetry(context.Background(), "llama3", "hello", Options{}, 2, time.Millisecond)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, http.StatusBadGateway, genErr.StatusCode)
	assert.EqualValues(t, 2, f.generateHits.Load())
}

func TestRetryPolicyDoublesDelay(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialDelay: 10 * time.Millisecond}

	var stamps []time.Time
	_, err := policy.Do(context.Background(), func(context.Context) (string, error) {
		stamps = append(stamps, time.Now())
		return "", assert.AnError
	})
	require.Error(t, err)
	require.Len(t, stamps, 3)

	first := stamps[1].Sub(stamps[0])
	second := stamps[2].Sub(stamps[1])
	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.GreaterOrEqual(t, second, 20*time.Millisecond)
}

func TestRetryPolicyRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 5, InitialDelay: time.Hour}

	go cancel()
	_, err := policy.Do(ctx, func(context.Context) (string, error) {
		return "", assert.AnError
	})
	assert.ErrorIs(t, err, context.Canceled)
}
