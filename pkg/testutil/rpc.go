package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RPCError is the error object of a JSON-RPC 2.0 response.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RPCHandler serves a single JSON-RPC method. params holds the positional
// parameters of the request.
type RPCHandler func(params []json.RawMessage) (result interface{}, err *RPCError)

// RPCServer is an in-process JSON-RPC 2.0 endpoint with per-method handlers.
// Methods without a handler respond with "method not found".
type RPCServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]RPCHandler
	calls    map[string][][]json.RawMessage
}

func NewRPCServer(t *testing.T) *RPCServer {
	s := &RPCServer{
		handlers: make(map[string]RPCHandler),
		calls:    make(map[string][][]json.RawMessage),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers (or replaces) the handler for method.
func (s *RPCServer) Handle(method string, h RPCHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Result registers a handler that always returns result.
func (s *RPCServer) Result(method string, result interface{}) {
	s.Handle(method, func([]json.RawMessage) (interface{}, *RPCError) {
		return result, nil
	})
}

// Calls returns the parameters of every request made to method, in order.
func (s *RPCServer) Calls(method string) [][]json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]json.RawMessage(nil), s.calls[method]...)
}

func (s *RPCServer) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     interface{}     `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := positional(req.Params)

	s.mu.Lock()
	s.calls[req.Method] = append(s.calls[req.Method], params)
	h, ok := s.handlers[req.Method]
	s.mu.Unlock()

	resp := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      req.ID,
	}
	if !ok {
		resp["error"] = &RPCError{Code: -32601, Message: "Method not found"}
	} else if result, rpcErr := h(params); rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func positional(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var params []json.RawMessage
	if raw[0] == '[' && json.Unmarshal(raw, &params) == nil {
		return params
	}
	return []json.RawMessage{raw}
}
