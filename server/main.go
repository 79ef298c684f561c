//go:build !js
// +build !js

package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/voxrunner/voxrunner/stage"
)

//go:embed index.html
var indexHTML []byte

// stageEntry is one row in the stage listing.
type stageEntry struct {
	Name      string  `json:"name"`
	File      string  `json:"file"`
	Length    float64 `json:"length"`
	Duration  float64 `json:"duration,omitempty"`
	BPM       float64 `json:"bpm,omitempty"`
	AudioFile string  `json:"audioFile,omitempty"`
	Pillars   int     `json:"pillars"`
}

// listStages scans the stage directory for generated stage files.
func listStages(dir string) ([]stageEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	entries := make([]stageEntry, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping unreadable stage %s: %v", path, err)
			continue
		}
		cfg, err := stage.Parse(data)
		if err != nil {
			log.Printf("Skipping invalid stage %s: %v", path, err)
			continue
		}
		name := cfg.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), ".json")
		}
		entries = append(entries, stageEntry{
			Name:      name,
			File:      filepath.Base(path),
			Length:    cfg.Length,
			Duration:  cfg.Duration,
			BPM:       cfg.BPM,
			AudioFile: cfg.AudioFile,
			Pillars:   len(cfg.Pillars),
		})
	}
	return entries, nil
}

// handleStages serves the stage listing and individual stage files.
func handleStages(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		name := strings.TrimPrefix(r.URL.Path, "/api/stages")
		name = strings.TrimPrefix(name, "/")
		if name == "" {
			entries, err := listStages(dir)
			if err != nil {
				http.Error(w, `{"error":"stage listing failed"}`, http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"stages": entries})
			return
		}

		// Individual stage file; the name is a bare filename, never a path.
		if name != filepath.Base(name) || !strings.HasSuffix(name, ".json") {
			http.Error(w, `{"error":"bad stage name"}`, http.StatusBadRequest)
			return
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			http.Error(w, `{"error":"stage not found"}`, http.StatusNotFound)
			return
		}
		w.Write(data)
	}
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	staticDir := flag.String("static", ".", "Directory to serve static files from")
	stageDir := flag.String("stages", "stages", "Directory containing generated stage files")
	flag.Parse()

	// Serve embedded index.html at root path
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(indexHTML)
			return
		}
		// Serve other static files from disk (compiled JS, audio)
		http.FileServer(http.Dir(*staticDir)).ServeHTTP(w, r)
	})

	// Stage listing and stage files
	http.HandleFunc("/api/stages", handleStages(*stageDir))
	http.HandleFunc("/api/stages/", handleStages(*stageDir))

	// Health check
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Voxrunner server starting on http://localhost%s", addr)
	log.Printf("Serving static files from: %s", *staticDir)
	log.Printf("Serving stages from: %s", *stageDir)
	log.Printf("Stage listing endpoint: /api/stages")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
