package docserver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveEndpointsDisabledWithoutPrefix(t *testing.T) {
	_, enabled := resolveEndpoints("Pets API", Config{RedocPath: "redoc"})
	if enabled {
		t.Fatal("no prefix must disable documentation serving entirely")
	}
}

func TestResolveEndpointsDefaultJSONPath(t *testing.T) {
	resolved, enabled := resolveEndpoints("Pets API", Config{Prefix: "api-docs"})
	if !enabled {
		t.Fatal("expected endpoints enabled")
	}
	if resolved.JSONPath != "/api-docs/openapi.json" {
		t.Fatalf("unexpected json path: %q", resolved.JSONPath)
	}
	if resolved.RedocPath != "" || resolved.SwaggerUIPath != "" {
		t.Fatalf("viewers should stay disabled: %+v", resolved)
	}
}

func TestResolveEndpointsNormalizesSlashes(t *testing.T) {
	resolved, _ := resolveEndpoints("t", Config{
		Prefix:    "/api-docs/",
		JSONPath:  "spec.json",
		RedocPath: "redoc",
	})
	if resolved.JSONPath != "/api-docs/spec.json" {
		t.Fatalf("unexpected json path: %q", resolved.JSONPath)
	}
	if resolved.RedocPath != "/api-docs/redoc" {
		t.Fatalf("unexpected redoc path: %q", resolved.RedocPath)
	}
}

func TestRedocScriptURLBranches(t *testing.T) {
	cases := []struct {
		url     string
		version string
		want    string
	}{
		{url: "https://example.com/redoc.js", version: "2.0.0", want: "https://example.com/redoc.js"},
		{version: "", want: "https://rebilly.github.io/ReDoc/releases/latest/redoc.min.js"},
		{version: "latest", want: "https://rebilly.github.io/ReDoc/releases/latest/redoc.min.js"},
		{version: "v1.2.3", want: "https://rebilly.github.io/ReDoc/releases/v1.2.3/redoc.min.js"},
		{version: "next", want: "https://cdn.jsdelivr.net/npm/redoc@next/bundles/redoc.standalone.js"},
		{version: "2.0.0", want: "https://cdn.jsdelivr.net/npm/redoc@2.0.0/bundles/redoc.standalone.js"},
		{version: "v2.0.0", want: "https://cdn.jsdelivr.net/npm/redoc@v2.0.0/bundles/redoc.standalone.js"},
	}
	for _, tc := range cases {
		if got := redocScriptURL(tc.url, tc.version); got != tc.want {
			t.Fatalf("url=%q version=%q: got %q, want %q", tc.url, tc.version, got, tc.want)
		}
	}
}

func TestSwaggerUIBaseURL(t *testing.T) {
	if got, ok := swaggerUIBaseURL("https://example.com/swagger", ""); !ok || got != "https://example.com/swagger/" {
		t.Fatalf("explicit URL should win with trailing slash, got %q ok=%v", got, ok)
	}
	if got, ok := swaggerUIBaseURL("", "3.24.2"); !ok || got != "https://cdnjs.cloudflare.com/ajax/libs/swagger-ui/3.24.2/" {
		t.Fatalf("version should derive cdnjs URL, got %q ok=%v", got, ok)
	}
	if _, ok := swaggerUIBaseURL("", ""); ok {
		t.Fatal("no URL and no version must not resolve")
	}
}

func TestResolveEndpointsSkipsSwaggerUIWithoutURL(t *testing.T) {
	resolved, _ := resolveEndpoints("t", Config{
		Prefix:        "api-docs",
		SwaggerUIPath: "swagger",
	})
	if resolved.SwaggerUIPath != "" {
		t.Fatalf("swagger endpoint must be skipped without a script URL, got %q", resolved.SwaggerUIPath)
	}
}

func TestResolveEndpointsDefaultSubmitMethods(t *testing.T) {
	resolved, _ := resolveEndpoints("t", Config{
		Prefix:           "api-docs",
		SwaggerUIPath:    "swagger",
		SwaggerUIVersion: "3.24.2",
	})
	want := []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}
	if diff := cmp.Diff(want, resolved.SubmitMethods); diff != "" {
		t.Fatalf("unexpected submit methods (-want +got):\n%s", diff)
	}
}

func TestExplicitlyEmptySubmitMethodsDisableTryItOut(t *testing.T) {
	cfg := ConfigFromMap(map[string]any{
		KeyURLPrefix:                       "api-docs",
		KeySwaggerUIPath:                   "swagger",
		KeySwaggerUIVersion:                "3.24.2",
		KeySwaggerUISupportedSubmitMethods: []any{},
	})
	if cfg.SwaggerUISupportedSubmitMethods == nil {
		t.Fatal("explicit empty list must not collapse to nil")
	}

	resolved, _ := resolveEndpoints("t", cfg)
	if resolved.SubmitMethods == nil || len(resolved.SubmitMethods) != 0 {
		t.Fatalf("empty list must stay empty, got %v", resolved.SubmitMethods)
	}
}

func TestResolveEndpointsSanitizesTitle(t *testing.T) {
	resolved, _ := resolveEndpoints("Pets <script>alert(1)</script> API", Config{Prefix: "docs"})
	if resolved.Title != "Pets  API" {
		t.Fatalf("unexpected sanitized title: %q", resolved.Title)
	}
}

func TestConfigFromMap(t *testing.T) {
	cfg := ConfigFromMap(map[string]any{
		KeyURLPrefix:                       "api-docs",
		KeyJSONPath:                        "spec.json",
		KeyRedocPath:                       "redoc",
		KeyRedocVersion:                    "v1.2.3",
		KeySwaggerUIPath:                   "swagger",
		KeySwaggerUIVersion:                "3.24.2",
		KeySwaggerUISupportedSubmitMethods: []any{"get", "post"},
	})

	want := Config{
		Prefix:                          "api-docs",
		JSONPath:                        "spec.json",
		RedocPath:                       "redoc",
		RedocVersion:                    "v1.2.3",
		SwaggerUIPath:                   "swagger",
		SwaggerUIVersion:                "3.24.2",
		SwaggerUISupportedSubmitMethods: []string{"get", "post"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}
