// Package server exposes the animation pipeline over HTTP: POST an
// image and a message to /export_video and get an MP4 back.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"

	"github.com/perbu/heartrain/anim"
	"github.com/perbu/heartrain/encode"
)

// EncodeFunc turns a frame sequence into a video file at outPath. It is
// an injection point so tests can run without ffmpeg installed; the
// default is encode.MP4.
type EncodeFunc func(ctx context.Context, frames []*image.RGBA, fps int, outPath string) error

// Server handles video export requests.
type Server struct {
	cfg    Config
	log    *slog.Logger
	encode EncodeFunc
}

// New returns a Server using the real ffmpeg encoder.
func New(cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, log: log, encode: encode.MP4}
}

// Handler returns the HTTP handler tree, CORS headers included.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /export_video", s.handleExport)
	return withCORS(mux)
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadMB<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "empty filename")
		return
	}
	message := truncateMessage(r.FormValue("message"), s.cfg.MaxMessageLen)

	background, err := anim.DecodeBackground(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image file")
		return
	}

	params := s.cfg.Params()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	frames, err := anim.GenerateFramesParallel(background, message, params, rng)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tmpdir, err := os.MkdirTemp("", "heartrain-")
	if err != nil {
		s.log.Error("creating temp dir", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to encode video")
		return
	}
	defer os.RemoveAll(tmpdir)

	outPath := filepath.Join(tmpdir, "output.mp4")
	if err := s.encode(r.Context(), frames, params.FPS, outPath); err != nil {
		switch {
		case errors.Is(err, encode.ErrEncoderMissing):
			writeError(w, http.StatusInternalServerError, "ffmpeg is not installed on the server")
		default:
			s.log.Error("encoding video", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to encode video")
		}
		return
	}

	s.log.Info("video exported", "frames", len(frames), "message_len", len(message))
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", `attachment; filename="heartrain.mp4"`)
	http.ServeFile(w, r, outPath)
}

// truncateMessage caps the caption length in runes, so a multi-byte
// character is never split in half.
func truncateMessage(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// withCORS adds permissive cross-origin headers to every response, so a
// front end served from another domain can call the API. Restrict the
// origin when deploying behind a fixed front end.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
