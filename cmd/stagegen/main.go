package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

func main() {
	output := flag.String("o", "", "Output stage file (default: <song name>.json)")
	name := flag.String("name", "", "Stage name (default: audio filename)")
	scrollSpeed := flag.Float64("scroll-speed", 80, "Game scroll speed in pixels/second")
	spacing := flag.Float64("spacing", 400, "Minimum pillar spacing in pixels")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: stagegen [flags] <audio file>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	audioPath := flag.Arg(0)

	samples, sampleRate, err := decodeMono(audioPath)
	if err != nil {
		log.Fatalf("Decoding %s: %v", audioPath, err)
	}
	log.Printf("Decoded %s: %.2fs at %.0f Hz", audioPath,
		float64(len(samples))/sampleRate, sampleRate)

	analysis := Analyze(samples, sampleRate)
	log.Printf("Analysis: %d beats, %d onsets, tempo %.1f BPM",
		len(analysis.BeatTimes), len(analysis.OnsetTimes), analysis.Tempo)

	gen := &Generator{ScrollSpeed: *scrollSpeed, MinSpacing: *spacing}

	stageName := *name
	if stageName == "" {
		stageName = strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	}
	cfg := gen.Config(analysis, stageName, filepath.Base(audioPath))

	outPath := *output
	if outPath == "" {
		outPath = stageName + ".json"
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatalf("Encoding stage: %v", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("Writing %s: %v", outPath, err)
	}

	log.Printf("Stage written: %s (%d pillars over %.0f px)",
		outPath, len(cfg.Pillars), cfg.Length)
}

// decodeMono decodes a wav or mp3 file and mixes it down to mono.
func decodeMono(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, 0, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, 0, err
	}
	defer streamer.Close()

	var mono []float64
	buf := make([][2]float64, 1024)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			mono = append(mono, (buf[i][0]+buf[i][1])/2)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, 0, err
	}
	return mono, float64(format.SampleRate), nil
}
