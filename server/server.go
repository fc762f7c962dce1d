// Package server exposes an optional local status endpoint while the engine
// runs: JSON-RPC over HTTP for status/config/shutdown, and a websocket
// stream of classified gestures for threshold tuning.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/swipetools/gesturectl/config"
	"github.com/swipetools/gesturectl/utils"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Server error: Internal JSON-RPC error
	ErrCodeServerError = -32000
)

// Server timeouts
const (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second
)

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// StatusResult is the response payload of the status method.
type StatusResult struct {
	Uptime     string `json:"uptime"`
	Device     string `json:"device"`
	Classified uint64 `json:"classified"`
	Fired      uint64 `json:"fired"`
}

// Server holds the running engine's status and the websocket subscribers.
// It implements engine.Notifier.
type Server struct {
	cfg      *config.Config
	device   string
	started  time.Time
	shutdown func()

	mu          sync.Mutex
	subscribers map[*subscriber]bool
	classified  uint64
	fired       uint64
}

// New creates a status server. shutdown is invoked by the shutdown method
// and must stop the engine.
func New(cfg *config.Config, device string, shutdown func()) *Server {
	return &Server{
		cfg:         cfg,
		device:      device,
		started:     time.Now(),
		shutdown:    shutdown,
		subscribers: make(map[*subscriber]bool),
	}
}

// ListenAndServe blocks serving /rpc and /events on addr. A bare port
// number is accepted and bound on localhost.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", s.handleJSONRPC)
	mux.HandleFunc("/events", s.handleEvents)

	if !strings.Contains(addr, ":") {
		port, err := strconv.Atoi(addr)
		if err != nil {
			return fmt.Errorf("invalid port: %v", err)
		}
		addr = fmt.Sprintf("localhost:%d", port)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	utils.Info("status server listening on http://%s", server.Addr)
	return server.ListenAndServe()
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
		return
	}

	if req.JSONRPC != "2.0" {
		sendJSONRPCError(w, req.ID, ErrCodeInvalidRequest, "Invalid Request", "'jsonrpc' must be '2.0'")
		return
	}

	result, err := s.dispatch(req.Method)
	if err != nil {
		sendJSONRPCError(w, req.ID, ErrCodeMethodNotFound, "Method not found", err.Error())
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

func (s *Server) dispatch(method string) (interface{}, error) {
	switch method {
	case "status":
		return s.status(), nil
	case "config":
		return s.cfg.ListRules(), nil
	case "shutdown":
		// respond first, then stop the engine
		go s.shutdown()
		return okResponse, nil
	default:
		return nil, fmt.Errorf("method not found: %s", method)
	}
}

func (s *Server) status() StatusResult {
	s.mu.Lock()
	classified, fired := s.classified, s.fired
	s.mu.Unlock()

	return StatusResult{
		Uptime:     time.Since(s.started).Round(time.Second).String(),
		Device:     s.device,
		Classified: classified,
		Fired:      fired,
	}
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	})
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message, data string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	})
}
