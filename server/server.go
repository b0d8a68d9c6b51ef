// Package server exposes the parser over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/dhamidi/docparse/doc/parser"
	"github.com/dhamidi/docparse/format"
	"github.com/dhamidi/docparse/lsp"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("docparse.server")

// maxBodySize bounds request bodies.
const maxBodySize = 4 << 20

type Server struct {
	router chi.Router
	index  parser.SymbolIndex
	files  parser.FileProvider
	config parser.Config
}

// Option configures a Server.
type Option func(*Server)

func WithIndex(idx parser.SymbolIndex) Option {
	return func(s *Server) { s.index = idx }
}

func WithFiles(files parser.FileProvider) Option {
	return func(s *Server) { s.files = files }
}

func WithConfig(cfg parser.Config) Option {
	return func(s *Server) { s.config = cfg }
}

func NewServer(opts ...Option) *Server {
	s := &Server{config: parser.DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/parse", s.handleParse)
	r.Post("/parse/text", s.handleParseText)
	r.Post("/check", s.handleCheck)

	s.router = r
}

// ParseRequest is the body of POST /parse and POST /parse/text.
type ParseRequest struct {
	Text  string `json:"text"`
	File  string `json:"file,omitempty"`
	Line  int    `json:"line,omitempty"`
	Scope string `json:"scope,omitempty"`

	// Format selects the rendering of the tree: "json" (default), "text"
	// or "tree".
	Format string `json:"format,omitempty"`
}

type ParseResponse struct {
	Tree        *format.JSONNode    `json:"tree,omitempty"`
	Rendered    string              `json:"rendered,omitempty"`
	Diagnostics []parser.Diagnostic `json:"diagnostics"`

	HasParamCommand  bool `json:"has_param_command,omitempty"`
	HasReturnCommand bool `json:"has_return_command,omitempty"`
}

// CheckRequest is the body of POST /check: a whole source file.
type CheckRequest struct {
	Path   string `json:"path"`
	Source string `json:"source"`
}

type CheckResponse struct {
	Blocks      int                 `json:"blocks"`
	Diagnostics []parser.Diagnostic `json:"diagnostics"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decode(w, r, &req) {
		return
	}
	sink := &parser.Collector{}
	doc := parser.Parse(req.Text, s.options(req, sink)...)

	resp, ok := render(w, doc.Root, req.Format)
	if !ok {
		return
	}
	resp.Diagnostics = nonNil(sink.Diagnostics())
	resp.HasParamCommand = doc.HasParamCommand
	resp.HasReturnCommand = doc.HasReturnCommand
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decode(w, r, &req) {
		return
	}
	sink := &parser.Collector{}
	root := parser.ParseText(req.Text, s.options(req, sink)...)

	resp, ok := render(w, root, req.Format)
	if !ok {
		return
	}
	resp.Diagnostics = nonNil(sink.Diagnostics())
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}
	info := lsp.Check(req.Path, []byte(req.Source), s.index, s.files, s.config)
	writeJSON(w, http.StatusOK, CheckResponse{
		Blocks:      len(info.Blocks),
		Diagnostics: nonNil(info.Diagnostics),
	})
}

func (s *Server) options(req ParseRequest, sink parser.DiagnosticSink) []parser.Option {
	opts := []parser.Option{
		parser.WithSink(sink),
		parser.WithConfig(s.config),
	}
	if req.File != "" {
		opts = append(opts, parser.WithFile(req.File))
	}
	if req.Line > 0 {
		opts = append(opts, parser.WithStartLine(req.Line))
	}
	if req.Scope != "" {
		opts = append(opts, parser.WithScope(req.Scope))
	}
	if s.index != nil {
		opts = append(opts, parser.WithIndex(s.index))
	}
	if s.files != nil {
		opts = append(opts, parser.WithFiles(s.files))
	}
	return opts
}

func render(w http.ResponseWriter, root *parser.Node, kind string) (*ParseResponse, bool) {
	resp := &ParseResponse{}
	switch kind {
	case "", "json":
		resp.Tree = format.NodeJSON(root)
	case "text":
		resp.Rendered = format.PlainText(root)
	case "tree":
		resp.Rendered = root.String()
	default:
		jsonError(w, "unknown format "+kind, http.StatusBadRequest)
		return nil, false
	}
	return resp, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func nonNil(diags []parser.Diagnostic) []parser.Diagnostic {
	if diags == nil {
		return []parser.Diagnostic{}
	}
	return diags
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
