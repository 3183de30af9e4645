// Package server is the local development server: it serves generated map
// documents and the manifest, and regenerates maps on request so the
// rendering layer can iterate without restarting.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/quiethollow/mapforge/pkg/gen"
	"github.com/quiethollow/mapforge/pkg/stats"
	"github.com/quiethollow/mapforge/pkg/theme"
)

// Server serves generated maps from a directory.
type Server struct {
	mapsDir string
	port    int
	log     *slog.Logger
}

// New creates a server over the given maps directory. When logFile is
// non-empty, logs are written there with rotation instead of stderr.
func New(mapsDir string, port int, logFile string) *Server {
	var out io.Writer = os.Stderr
	if logFile != "" {
		out = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
	}
	return &Server{
		mapsDir: mapsDir,
		port:    port,
		log:     slog.New(slog.NewTextHandler(out, nil)),
	}
}

// Start launches the HTTP server and blocks.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/maps", s.handleManifest)
	mux.HandleFunc("GET /api/maps/{file}", s.handleMap)
	mux.HandleFunc("GET /api/themes", s.handleThemes)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("mapforge server starting", "addr", addr, "maps_dir", s.mapsDir)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>mapforge</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>mapforge</h1>
<p>World documents are served under <code>/api/maps</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleManifest(w http.ResponseWriter, _ *http.Request) {
	data, err := os.ReadFile(filepath.Join(s.mapsDir, "index.json"))
	if err != nil {
		s.jsonError(w, http.StatusNotFound, "no manifest; generate maps first")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	// The maps directory is flat; reject anything that looks like a path.
	if file != filepath.Base(file) || !strings.HasSuffix(file, ".json") {
		s.jsonError(w, http.StatusBadRequest, "invalid map filename")
		return
	}
	data, err := os.ReadFile(filepath.Join(s.mapsDir, file))
	if err != nil {
		s.jsonError(w, http.StatusNotFound, "map not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"themes": theme.Names()})
}

type generateRequest struct {
	Theme   string  `json:"theme"`
	Seed    int64   `json:"seed"`
	MapSize float64 `json:"mapSize"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, report, err := gen.Generate(req.Theme, gen.Options{Seed: req.Seed, MapSize: req.MapSize})
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Info("generated map",
		"theme", req.Theme, "seed", req.Seed, "summary", report.Summary)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document": doc,
		"stats":    stats.Collect(doc),
		"report":   report,
	})
}

func (s *Server) jsonError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
