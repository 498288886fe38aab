package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/juruen/digitrec/canvas"
	"github.com/juruen/digitrec/hwr"
	"github.com/juruen/digitrec/log"
	"github.com/juruen/digitrec/session"
	"github.com/juruen/digitrec/shell"
	"github.com/juruen/digitrec/version"
)

const maxUploadSize = 10 << 20

type ApiServer struct {
	session *session.Controller
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewApiServer(ctrl *session.Controller) *ApiServer {
	return &ApiServer{session: ctrl}
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

// statusFor maps session and service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, canvas.ErrUnsupportedImageFormat), errors.Is(err, session.ErrWrongMode):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrPredictionInFlight), errors.Is(err, session.ErrStaleResponse):
		return http.StatusConflict
	case errors.Is(err, session.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, hwr.ErrPredictionFailed), errors.Is(err, hwr.ErrTransport):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// GET /api/state
func (s *ApiServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeSuccess(w, s.session.Snapshot())
}

// POST /api/mode
func (s *ApiServer) handleMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Mode *session.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Mode == nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("mode is required"))
		return
	}

	s.session.SwitchMode(*req.Mode)
	s.writeSuccess(w, s.session.Snapshot())
}

// POST /api/auto
func (s *ApiServer) handleAuto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.session.SetAutoPredict(req.Enabled)
	s.writeSuccess(w, s.session.Snapshot())
}

// POST /api/stroke
func (s *ApiServer) handleStroke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Points []canvas.Point `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Points) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("points are required"))
		return
	}

	if err := s.session.Stroke(req.Points); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeSuccess(w, s.session.Snapshot())
}

// POST /api/pointer
func (s *ApiServer) handlePointer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Type    string         `json:"type"`
		X       float64        `json:"x"`
		Y       float64        `json:"y"`
		Touches []canvas.Point `json:"touches"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if s.session.Mode() != session.Draw {
		s.writeError(w, http.StatusBadRequest, session.ErrWrongMode)
		return
	}

	switch req.Type {
	case "mousedown":
		s.session.MouseDown(req.X, req.Y)
	case "mousemove":
		s.session.MouseMove(req.X, req.Y)
	case "mouseup":
		s.session.MouseUp()
	case "mouseleave":
		s.session.MouseLeave()
	case "touchstart":
		s.session.TouchStart(req.Touches)
	case "touchmove":
		s.session.TouchMove(req.Touches)
	case "touchend":
		s.session.TouchEnd()
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown pointer event %q", req.Type))
		return
	}
	s.writeSuccess(w, s.session.Snapshot())
}

// POST /api/upload?name=<name>
func (s *ApiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	placement, err := s.session.PlaceUpload(name, data)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeSuccess(w, map[string]interface{}{
		"placement": placement,
		"state":     s.session.Snapshot(),
	})
}

// POST /api/predict
func (s *ApiServer) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	res, err := s.session.RequestPrediction(r.Context())
	if err != nil {
		log.Trace.Printf("predict: %v", err)
		s.writeError(w, statusFor(err), err)
		return
	}

	s.writeSuccess(w, shell.ResultToJSON(res))
}

// POST /api/clear
func (s *ApiServer) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.session.Clear()
	s.writeSuccess(w, s.session.Snapshot())
}

// GET /api/canvas.png
func (s *ApiServer) handleCanvas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := s.session.EncodePNG()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "inline; filename=\"canvas.png\"")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GET /api/version
func (s *ApiServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeSuccess(w, map[string]string{"version": version.Version})
}

func (s *ApiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/mode", s.handleMode)
	mux.HandleFunc("/api/auto", s.handleAuto)
	mux.HandleFunc("/api/stroke", s.handleStroke)
	mux.HandleFunc("/api/pointer", s.handlePointer)
	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/api/predict", s.handlePredict)
	mux.HandleFunc("/api/clear", s.handleClear)
	mux.HandleFunc("/api/canvas.png", s.handleCanvas)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Root endpoint with API documentation
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
	<title>digitrec API</title>
</head>
<body>
	<h1>digitrec API</h1>
	<p>Recognition service: %s</p>
	<h2>Endpoints:</h2>
	<ul>
		<li>GET /api/state - Session state</li>
		<li>POST /api/mode - Switch between draw and upload</li>
		<li>POST /api/auto - Arm or disarm auto predict</li>
		<li>POST /api/stroke - Draw a complete stroke</li>
		<li>POST /api/pointer - Replay a pointer event</li>
		<li>POST /api/upload - Place an image (raw body)</li>
		<li>POST /api/predict - Recognize the surface</li>
		<li>POST /api/clear - Blank the surface</li>
		<li>GET /api/canvas.png - Current surface</li>
		<li>GET /api/version - Get version</li>
		<li>GET /health - Health check</li>
	</ul>
</body>
</html>
		`, s.session.Health().State())
	})

	return mux
}

func runServerMode(ctrl *session.Controller, port string) {
	server := NewApiServer(ctrl)

	log.Info.Printf("Starting HTTP server on port %s", port)
	if err := http.ListenAndServe(":"+port, server.routes()); err != nil {
		log.Error.Fatalf("Server failed: %v", err)
	}
}
