package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/df07/go-montecarlo-raytracer/pkg/log"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

func newTestServer() *Server {
	return NewServer(0, scene.Options{Seed: 1, EarthTexture: "missing.jpg"}, renderer.RenderConfig{TileSize: 4, NumWorkers: 2, Seed: 1})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var entries []sceneListEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Failed to decode scenes: %v", err)
	}
	if len(entries) != len(scene.ListScenes()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.ListScenes()), len(entries))
	}
}

func TestSceneConfig(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/api/scene-config?scene=cornell-box")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response struct {
		Scene    string         `json:"scene"`
		Defaults map[string]int `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode config: %v", err)
	}
	if response.Defaults["width"] != 600 || response.Defaults["samplesPerPixel"] != 200 {
		t.Errorf("Unexpected Cornell defaults %v", response.Defaults)
	}

	if rec := get(t, s, "/api/scene-config?scene=nope"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown scene, got %d", rec.Code)
	}
}

func TestRender(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/api/render?scene=cornell-box&width=8&spp=1&depth=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Expected image/png, got %s", rec.Header().Get("Content-Type"))
	}
	if rec.Header().Get("X-Render-Samples") != "64" {
		t.Errorf("Expected 64 samples, got %s", rec.Header().Get("X-Render-Samples"))
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Failed to decode png: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 8x8 image, got %v", img.Bounds())
	}

	ppm := get(t, s, "/api/render?scene=two-spheres&width=8&height=4&spp=1&depth=2&format=ppm")
	if ppm.Code != http.StatusOK || !strings.HasPrefix(ppm.Body.String(), "P3\n8 4\n255\n") {
		t.Errorf("Unexpected ppm response %d: %.20q", ppm.Code, ppm.Body.String())
	}
}

func TestRenderBadRequests(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		query  url.Values
		status int
	}{
		{url.Values{"width": {"abc"}}, http.StatusBadRequest},
		{url.Values{"width": {"0"}}, http.StatusBadRequest},
		{url.Values{"spp": {"100000"}}, http.StatusBadRequest},
		{url.Values{"format": {"gif"}}, http.StatusBadRequest},
		{url.Values{"scene": {"nope"}, "width": {"4"}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.query.Encode(), func(t *testing.T) {
			rec := get(t, s, "/api/render?"+tt.query.Encode())
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

// brokenWriter simulates a client that disconnects before the image is sent
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestRenderLogsFailedWrite(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	defer log.SetSink(os.Stdout)

	w := brokenWriter{httptest.NewRecorder()}
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=cornell-box&width=4&spp=1&depth=1", nil)
	newTestServer().Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 before the failed write, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), "failed to write cornell-box image: connection reset") {
		t.Errorf("Expected failed write to be logged, got %q", buf.String())
	}
}
