package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/prompts"
	"github.com/richard-senior/leaguestats/pkg/protocol"
	"github.com/richard-senior/leaguestats/pkg/resources"
	"github.com/richard-senior/leaguestats/pkg/tools"
	"github.com/richard-senior/leaguestats/pkg/transport"
)

const (
	Name    = "leaguestats"
	Version = "1.0.0"
	// some clients prefix tool names with the server alias
	toolPrefix = "mcp___"
)

// HandlerFunc is a function that handles an MCP request
type HandlerFunc func(params any) (any, error)

// Server represents an MCP server
type Server struct {
	transport transport.Transport
	mu        sync.RWMutex
	handlers  map[string]func(json.RawMessage) (any, error)
	tools     []protocol.Tool
	calls     map[string]HandlerFunc
	catalog   *resources.Catalog
	prompts   *prompts.PromptRegistry
}

// New creates a server answering on t. catalog and registry may be nil.
func New(t transport.Transport, catalog *resources.Catalog, registry *prompts.PromptRegistry) *Server {
	s := &Server{
		transport: t,
		calls:     map[string]HandlerFunc{},
		catalog:   catalog,
		prompts:   registry,
	}
	s.handlers = map[string]func(json.RawMessage) (any, error){
		string(protocol.MethodInitialize):    s.handleInitialize,
		string(protocol.MethodPing):          func(json.RawMessage) (any, error) { return struct{}{}, nil },
		string(protocol.MethodToolsList):     s.handleToolsList,
		string(protocol.MethodToolsCall):     s.handleToolsCall,
		string(protocol.MethodResourcesList): s.handleResourcesList,
		string(protocol.MethodResourcesRead): s.handleResourcesRead,
		string(protocol.MethodPromptsList):   s.handlePromptsList,
		string(protocol.MethodPromptsGet):    s.handlePromptsGet,
		string(protocol.MethodShutdown):      func(json.RawMessage) (any, error) { return struct{}{}, nil },
	}
	return s
}

// RegisterTool registers a tool with the server
func (s *Server) RegisterTool(tool protocol.Tool, handler HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.calls[tool.Name]; !dup {
		s.tools = append(s.tools, tool)
	}
	s.calls[tool.Name] = handler
	logger.Info("Registered tool:", tool.Name)
}

// RegisterToolbox registers every league tool.
func (s *Server) RegisterToolbox(tb *tools.Toolbox) {
	for _, e := range tb.Entries() {
		s.RegisterTool(e.Tool, HandlerFunc(e.Handle))
	}
}

// GetTools returns the list of registered tools
func (s *Server) GetTools() []protocol.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]protocol.Tool{}, s.tools...)
}

// Start processes requests until the client disconnects or the process is signalled.
func (s *Server) Start() error {
	logger.Info("Starting MCP server")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ProcessRequests()
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Received signal:", sig)
		return nil
	}
}

// ProcessRequests answers requests one at a time. A clean EOF ends it without error.
func (s *Server) ProcessRequests() error {
	for {
		req, err := s.transport.ReadRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var perr *transport.ParseError
			if errors.As(err, &perr) {
				resp := protocol.NewJsonRpcErrorResponse(protocol.ErrParse, perr.Error(), nil, nil)
				if err := s.transport.WriteResponse(resp); err != nil {
					return err
				}
				continue
			}
			return err
		}

		resp := s.handleRequest(req)
		if resp == nil {
			continue
		}
		if err := s.transport.WriteResponse(resp); err != nil {
			return err
		}
	}
}

// handleRequest returns nil for notifications, which get no response.
func (s *Server) handleRequest(req *protocol.JsonRpcRequest) *protocol.JsonRpcResponse {
	logger.Info(">> ", req.Method)

	if strings.HasPrefix(req.Method, "notifications/") || req.Method == string(protocol.MethodInitialized) {
		logger.Debug("Received notification:", req.Method)
		return nil
	}

	handler, ok := s.handlers[req.Method]
	if !ok {
		if req.IsNotification() {
			return nil
		}
		return protocol.NewJsonRpcErrorResponse(protocol.ErrMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method), nil, req.ID)
	}

	result, err := handler(req.Params)
	if req.IsNotification() {
		return nil
	}
	if err != nil {
		var rpc *protocol.JsonRpcError
		if errors.As(err, &rpc) {
			return protocol.NewJsonRpcErrorResponse(rpc.Code, rpc.Message, rpc.Data, req.ID)
		}
		return protocol.NewJsonRpcErrorResponse(protocol.ErrToolExecutionFailed, err.Error(), nil, req.ID)
	}

	resp, err := protocol.NewJsonRpcResponse(result, req.ID)
	if err != nil {
		return protocol.NewJsonRpcErrorResponse(protocol.ErrInternal,
			"Failed to marshal result: "+err.Error(), nil, req.ID)
	}
	logger.Debug("Full response:", string(resp.Result))
	return resp
}

func decode(params json.RawMessage, dst any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return protocol.NewInvalidParamsError("invalid parameters: %v", err)
	}
	return nil
}

func (s *Server) handleInitialize(params json.RawMessage) (any, error) {
	var init struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	if err := decode(params, &init); err != nil {
		return nil, err
	}
	version := init.ProtocolVersion
	if version == "" {
		version = protocol.DefaultProtocolVersion
	}
	logger.Info("Initializing with protocol version", version)

	capabilities := map[string]any{
		"tools": map[string]any{"listChanged": false},
	}
	if s.catalog != nil {
		capabilities["resources"] = map[string]any{"listChanged": false}
	}
	if s.prompts != nil {
		capabilities["prompts"] = map[string]any{"listChanged": false}
	}

	type serverInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	return struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
		ServerInfo      serverInfo     `json:"serverInfo"`
	}{
		ProtocolVersion: version,
		Capabilities:    capabilities,
		ServerInfo:      serverInfo{Name: Name, Version: Version},
	}, nil
}

func (s *Server) handleToolsList(json.RawMessage) (any, error) {
	return struct {
		Tools []protocol.Tool `json:"tools"`
	}{Tools: s.GetTools()}, nil
}

func (s *Server) handleToolsCall(params json.RawMessage) (any, error) {
	var call struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := decode(params, &call); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(call.Name, toolPrefix)
	logger.Info("Tool call requested for:", name)

	s.mu.RLock()
	handler := s.calls[name]
	s.mu.RUnlock()
	if handler == nil {
		return nil, protocol.NewInvalidParamsError("tool not found: %s", call.Name)
	}

	result, err := handler(call.Arguments)
	if err != nil {
		var rpc *protocol.JsonRpcError
		if errors.As(err, &rpc) {
			return nil, rpc
		}
		return nil, fmt.Errorf("tool execution failed: %w", err)
	}
	return result, nil
}

func (s *Server) handleResourcesList(json.RawMessage) (any, error) {
	list := []protocol.Resource{}
	if s.catalog != nil {
		list = s.catalog.GetResources()
	}
	return struct {
		Resources []protocol.Resource `json:"resources"`
	}{Resources: list}, nil
}

func (s *Server) handleResourcesRead(params json.RawMessage) (any, error) {
	var read struct {
		URI string `json:"uri"`
	}
	if err := decode(params, &read); err != nil {
		return nil, err
	}
	if read.URI == "" {
		return nil, protocol.NewInvalidParamsError("missing resource uri")
	}
	if s.catalog == nil {
		return nil, &protocol.JsonRpcError{Code: protocol.ErrResourceNotFound, Message: "resource not found: " + read.URI}
	}
	return s.catalog.Read(read.URI)
}

func (s *Server) handlePromptsList(json.RawMessage) (any, error) {
	list := []protocol.Prompt{}
	if s.prompts != nil {
		list = s.prompts.ListPrompts()
	}
	return struct {
		Prompts []protocol.Prompt `json:"prompts"`
	}{Prompts: list}, nil
}

func (s *Server) handlePromptsGet(params json.RawMessage) (any, error) {
	var get struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments,omitempty"`
	}
	if err := decode(params, &get); err != nil {
		return nil, err
	}
	if s.prompts == nil {
		return nil, protocol.NewInvalidParamsError("prompt not found: %s", get.Name)
	}
	return s.prompts.GetPrompt(get.Name, get.Arguments)
}
