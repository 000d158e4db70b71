// Package server exposes the artwork-to-G-code pipeline over HTTP: upload
// an image or DXF, get back a program the robot can draw.
package server

import (
	"bytes"
	"encoding/json"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	// Decoders for uploaded artwork.
	_ "image/jpeg"
	_ "image/png"

	"github.com/edaniels/golog"
	"goji.io"
	"goji.io/pat"

	"goturtle/gcode"
	"goturtle/trace"
)

// maxUploadBytes bounds artwork uploads.
const maxUploadBytes = 16 << 20

// Server converts uploaded artwork into plotter programs.
type Server struct {
	opts   trace.Options
	logger golog.Logger
}

// New returns a server tracing artwork with opts.
func New(opts trace.Options, logger golog.Logger) *Server {
	return &Server{opts: opts, logger: logger}
}

// Handler builds the route mux.
func (s *Server) Handler() http.Handler {
	mux := goji.NewMux()
	mux.HandleFunc(pat.Get("/"), s.health)
	mux.HandleFunc(pat.Post("/generate"), s.generate)
	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("goturtle server up and running\n"))
}

// generate accepts a multipart upload named "image" (raster or .dxf) and
// responds with {"result": <program>}.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	program, err := s.trace(header.Filename, file)
	if err != nil {
		s.logger.Warnw("trace failed", "file", header.Filename, "error", err)
		http.Error(w, "could not trace upload", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"result": program})
}

func (s *Server) trace(name string, file io.Reader) (string, error) {
	var buf bytes.Buffer

	if strings.EqualFold(filepath.Ext(name), ".dxf") {
		paths, err := trace.FromDXF(file)
		if err != nil {
			return "", err
		}
		trace.Fit(paths, float64(s.opts.Span))
		if err := gcode.WriteProgram(&buf, paths); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return "", err
	}
	paths := trace.FromImage(img, s.opts)
	if err := gcode.WriteProgram(&buf, paths); err != nil {
		return "", err
	}
	return buf.String(), nil
}
