package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-montecarlo-raytracer/pkg/log"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

var logger = log.New("server")

// Request limits
const (
	minImageSize  = 1
	maxImageSize  = 2000
	maxSamples    = 10000
	maxBounces    = 1000
	defaultScene  = "cornell-box"
	defaultFormat = renderer.FormatPNG
)

// Server renders built-in scenes on request
type Server struct {
	port         int
	sceneOptions scene.Options
	renderConfig renderer.RenderConfig
}

// NewServer creates a new web server
func NewServer(port int, sceneOptions scene.Options, renderConfig renderer.RenderConfig) *Server {
	return &Server{
		port:         port,
		sceneOptions: sceneOptions,
		renderConfig: renderConfig,
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string
	Width   int // 0 keeps the scene default
	Height  int // 0 derives the height from the width
	Samples int // 0 keeps the scene default
	Depth   int // 0 keeps the scene default
	Format  renderer.Format
}

// sceneListEntry is the JSON form of a built-in scene
type sceneListEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var entries []sceneListEntry
	for _, info := range scene.ListScenes() {
		entries = append(entries, sceneListEntry{
			ID:          info.ID,
			DisplayName: info.DisplayName,
			Description: info.Description,
			Group:       info.Group,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := scene.Build(sceneName, s.sceneOptions)
	if err != nil {
		writeError(w, err)
		return
	}

	config := sceneObj.GetSamplingConfig()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]int{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]map[string]int{
			"width":           {"min": minImageSize, "max": maxImageSize},
			"height":          {"min": minImageSize, "max": maxImageSize},
			"samplesPerPixel": {"min": 1, "max": maxSamples},
			"maxDepth":        {"min": 1, "max": maxBounces},
		},
	})
}

// handleRender renders the requested scene and returns the encoded image.
// The render is cancelled when the client goes away.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := scene.Build(req.Scene, s.sceneOptions)
	if err != nil {
		writeError(w, err)
		return
	}
	sceneObj.SetImageSize(req.Width, req.Height)

	rt := renderer.NewRaytracer(sceneObj, s.renderConfig)
	rt.MergeSamplingConfig(renderer.SamplingConfig{SamplesPerPixel: req.Samples, MaxDepth: req.Depth})

	img, stats, err := rt.Render(r.Context())
	if err != nil {
		logger.Warningf("render of %s failed: %v", req.Scene, err)
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, req.Format); err != nil {
		writeError(w, err)
		return
	}

	logger.Infof("rendered %s: %d samples in %s", req.Scene, stats.TotalSamples, stats.Duration)
	if req.Format == renderer.FormatPNG {
		w.Header().Set("Content-Type", "image/png")
	} else {
		w.Header().Set("Content-Type", "image/x-portable-pixmap")
	}
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("failed to write %s image: %v", req.Scene, err)
	}
}

// parseRenderRequest parses and validates render parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Format: defaultFormat}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxBounces); err != nil {
		return nil, err
	}
	if format := values.Get("format"); format != "" {
		if req.Format, err = renderer.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeError maps package errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		status = http.StatusNotFound
	case errors.Is(err, renderer.ErrInvalidConfig), errors.Is(err, renderer.ErrUnknownFormat):
		status = http.StatusBadRequest
	case errors.Is(err, renderer.ErrInterrupted):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}
