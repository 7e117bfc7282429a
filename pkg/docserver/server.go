package docserver

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-apidocs/pkg/spec"
)

// Registrar is the minimal interface required to register the documentation
// handlers. It is satisfied by *http.ServeMux and by chi routers.
type Registrar interface {
	Handle(pattern string, handler http.Handler)
}

// Option customises the server before construction.
type Option func(*Server)

// WithTemplateRenderer swaps the renderer used for the viewer pages.
func WithTemplateRenderer(renderer TemplateRenderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// Server serves the live document and the viewer pages. Construction resolves
// the endpoint snapshot once; the document itself is re-serialised on every
// request, never cached.
type Server struct {
	doc       spec.Document
	renderer  TemplateRenderer
	endpoints EndpointConfig
	enabled   bool
}

// New builds a doc server for the given live document. title labels the
// viewer pages.
func New(doc spec.Document, title string, cfg Config, options ...Option) *Server {
	s := &Server{doc: doc}
	s.endpoints, s.enabled = resolveEndpoints(title, cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = newTemplateEngine(TemplatesFS())
	}
	return s
}

// Endpoints returns the resolved endpoint snapshot. The second return is
// false when documentation serving is disabled.
func (s *Server) Endpoints() (EndpointConfig, bool) {
	return s.endpoints, s.enabled
}

// RegisterRoutes registers the enabled endpoints on r. With no documentation
// prefix configured nothing is registered at all; a Swagger UI path without a
// resolvable script URL is silently skipped.
func (s *Server) RegisterRoutes(r Registrar) {
	if !s.enabled {
		return
	}

	r.Handle(s.endpoints.JSONPath, http.HandlerFunc(s.serveJSON))
	if s.endpoints.RedocPath != "" {
		r.Handle(s.endpoints.RedocPath, http.HandlerFunc(s.serveRedoc))
	}
	if s.endpoints.SwaggerUIPath != "" {
		r.Handle(s.endpoints.SwaggerUIPath, http.HandlerFunc(s.serveSwaggerUI))
	}
}

// serveJSON writes the document as pretty-printed JSON. Key order is whatever
// the document model produced; no alphabetical re-sorting is applied on top.
func (s *Server) serveJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.doc.MarshalJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}

func (s *Server) serveRedoc(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "redoc.html", map[string]any{
		"title":     s.endpoints.Title,
		"spec_url":  s.endpoints.JSONPath,
		"redoc_url": s.endpoints.RedocURL,
	})
}

func (s *Server) serveSwaggerUI(w http.ResponseWriter, r *http.Request) {
	methods, err := json.Marshal(s.endpoints.SubmitMethods)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "swagger_ui.html", map[string]any{
		"title":          s.endpoints.Title,
		"spec_url":       s.endpoints.JSONPath,
		"swagger_ui_url": s.endpoints.SwaggerUIURL,
		"submit_methods": string(methods),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, name string, context map[string]any) {
	page, err := s.renderer.Render(name, context)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
