package docserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-apidocs/pkg/spec"
)

// staticDocument returns a fixed payload so body assertions are exact.
type staticDocument struct {
	payload string
}

func (d *staticDocument) MarshalJSON() ([]byte, error) { return []byte(d.payload), nil }

func (d *staticDocument) AddDefinition(name string, schema any, options ...spec.DefinitionOption) error {
	return nil
}
func (d *staticDocument) MapFieldType(sample any, typ, format string) {}
func (d *staticDocument) RegisterConverter(name, typ, format string)  {}

func (d *staticDocument) FieldType(any) (spec.TypeFormat, bool) {
	return spec.TypeFormat{}, false
}

func (d *staticDocument) ConverterType(string) (spec.TypeFormat, bool) {
	return spec.TypeFormat{}, false
}

func (d *staticDocument) AddPath(string, map[string]spec.Operation) error { return nil }
func (d *staticDocument) OpenAPIVersion() string                          { return "3.0.2" }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRegisterRoutesDisabledWithoutPrefix(t *testing.T) {
	mux := http.NewServeMux()
	srv := New(&staticDocument{payload: `{}`}, "Pets API", Config{RedocPath: "redoc"})
	srv.RegisterRoutes(mux)

	rec := get(t, mux, "/api-docs/openapi.json")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected framework 404 for unregistered route, got %d", rec.Code)
	}
}

func TestServeJSONPreservesModelOrder(t *testing.T) {
	mux := http.NewServeMux()
	srv := New(&staticDocument{payload: `{"zebra":1,"alpha":{"keep":"order","and":"this"}}`},
		"Pets API", Config{Prefix: "api-docs"})
	srv.RegisterRoutes(mux)

	rec := get(t, mux, "/api-docs/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "  \"zebra\"") {
		t.Fatalf("expected two-space indentation, got:\n%s", body)
	}
	if strings.Index(body, "zebra") > strings.Index(body, "alpha") {
		t.Fatalf("key order must match the model output, got:\n%s", body)
	}
	if strings.Index(body, "keep") > strings.Index(body, "and") {
		t.Fatalf("nested key order must match the model output, got:\n%s", body)
	}
}

func TestServeJSONReflectsLiveDocument(t *testing.T) {
	doc := &staticDocument{payload: `{"before":true}`}
	mux := http.NewServeMux()
	srv := New(doc, "Pets API", Config{Prefix: "api-docs"})
	srv.RegisterRoutes(mux)

	if body := get(t, mux, "/api-docs/openapi.json").Body.String(); !strings.Contains(body, "before") {
		t.Fatalf("unexpected body: %s", body)
	}

	// No caching: a mutation is visible on the very next request.
	doc.payload = `{"after":true}`
	if body := get(t, mux, "/api-docs/openapi.json").Body.String(); !strings.Contains(body, "after") {
		t.Fatalf("expected re-serialised document, got: %s", body)
	}
}

func TestRedocEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	srv := New(&staticDocument{payload: `{}`}, "Pets API", Config{
		Prefix:       "api-docs",
		RedocPath:    "redoc",
		RedocVersion: "v1.21.2",
	})
	srv.RegisterRoutes(mux)

	rec := get(t, mux, "/api-docs/redoc")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type: %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "https://rebilly.github.io/ReDoc/releases/v1.21.2/redoc.min.js") {
		t.Fatalf("expected GitHub CDN script URL, got:\n%s", body)
	}
	if !strings.Contains(body, `spec-url="/api-docs/openapi.json"`) {
		t.Fatalf("expected spec url pointing at the json endpoint, got:\n%s", body)
	}
	if !strings.Contains(body, "<title>Pets API</title>") {
		t.Fatalf("expected page title, got:\n%s", body)
	}
}

func TestSwaggerUIEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	srv := New(&staticDocument{payload: `{}`}, "Pets API", Config{
		Prefix:                          "api-docs",
		SwaggerUIPath:                   "swagger",
		SwaggerUIVersion:                "3.24.2",
		SwaggerUISupportedSubmitMethods: []string{"get", "post"},
	})
	srv.RegisterRoutes(mux)

	body := get(t, mux, "/api-docs/swagger").Body.String()
	if !strings.Contains(body, "https://cdnjs.cloudflare.com/ajax/libs/swagger-ui/3.24.2/swagger-ui-bundle.min.js") {
		t.Fatalf("expected cdnjs bundle URL, got:\n%s", body)
	}
	if !strings.Contains(body, `supportedSubmitMethods: ["get","post"]`) {
		t.Fatalf("expected submit methods JSON, got:\n%s", body)
	}
}

func TestSwaggerUISkippedWithoutScriptURL(t *testing.T) {
	mux := http.NewServeMux()
	srv := New(&staticDocument{payload: `{}`}, "Pets API", Config{
		Prefix:        "api-docs",
		SwaggerUIPath: "swagger",
	})
	srv.RegisterRoutes(mux)

	if rec := get(t, mux, "/api-docs/swagger"); rec.Code != http.StatusNotFound {
		t.Fatalf("swagger endpoint must not be registered, got %d", rec.Code)
	}
	// The JSON endpoint still serves.
	if rec := get(t, mux, "/api-docs/openapi.json"); rec.Code != http.StatusOK {
		t.Fatalf("json endpoint must remain registered, got %d", rec.Code)
	}
}

func TestRegisterRoutesOnChiRouter(t *testing.T) {
	router := chi.NewRouter()
	srv := New(&staticDocument{payload: `{"ok":true}`}, "Pets API", Config{
		Prefix:    "api-docs",
		RedocPath: "redoc",
	})
	srv.RegisterRoutes(router)

	if rec := get(t, router, "/api-docs/openapi.json"); rec.Code != http.StatusOK {
		t.Fatalf("expected chi to serve the json endpoint, got %d", rec.Code)
	}
	if rec := get(t, router, "/api-docs/redoc"); rec.Code != http.StatusOK {
		t.Fatalf("expected chi to serve the redoc endpoint, got %d", rec.Code)
	}
}
