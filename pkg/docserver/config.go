// Package docserver exposes the assembled OpenAPI document and interactive
// viewer pages (ReDoc, Swagger UI) as HTTP endpoints, each independently
// toggled by configuration.
package docserver

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Configuration keys understood by ConfigFromMap, for callers that carry
// framework-style key/value configuration.
const (
	KeyURLPrefix                       = "OPENAPI_URL_PREFIX"
	KeyJSONPath                        = "OPENAPI_JSON_PATH"
	KeyRedocPath                       = "OPENAPI_REDOC_PATH"
	KeyRedocURL                        = "OPENAPI_REDOC_URL"
	KeyRedocVersion                    = "OPENAPI_REDOC_VERSION"
	KeySwaggerUIPath                   = "OPENAPI_SWAGGER_UI_PATH"
	KeySwaggerUIURL                    = "OPENAPI_SWAGGER_UI_URL"
	KeySwaggerUIVersion                = "OPENAPI_SWAGGER_UI_VERSION"
	KeySwaggerUISupportedSubmitMethods = "OPENAPI_SWAGGER_UI_SUPPORTED_SUBMIT_METHODS"
)

const defaultJSONPath = "openapi.json"

// defaultSubmitMethods is the full standard method set Swagger UI enables the
// "try it out" feature for when the caller does not narrow it down.
var defaultSubmitMethods = []string{
	"get", "put", "post", "delete", "options", "head", "patch", "trace",
}

// Config collects the documentation endpoint settings. The zero value
// disables every endpoint: without a Prefix nothing is registered.
type Config struct {
	// Prefix mounts the documentation endpoints. Empty means documentation
	// serving is disabled entirely.
	Prefix string

	// JSONPath locates the JSON spec endpoint under Prefix. Defaults to
	// "openapi.json".
	JSONPath string

	// RedocPath enables the ReDoc viewer when set.
	RedocPath string
	// RedocURL overrides the ReDoc script URL. When empty the URL derives
	// from RedocVersion.
	RedocURL string
	// RedocVersion selects the CDN build when RedocURL is empty. Defaults to
	// "latest".
	RedocVersion string

	// SwaggerUIPath enables the Swagger UI viewer when set, provided a script
	// base URL can be resolved.
	SwaggerUIPath string
	// SwaggerUIURL overrides the Swagger UI scripts base URL.
	SwaggerUIURL string
	// SwaggerUIVersion derives a cdnjs base URL when SwaggerUIURL is empty.
	// With neither set, the Swagger UI endpoint is skipped.
	SwaggerUIVersion string

	// SwaggerUISupportedSubmitMethods lists the HTTP methods the interactive
	// "try it out" feature is enabled for. Nil means the full standard set;
	// an empty non-nil slice disables the feature entirely.
	SwaggerUISupportedSubmitMethods []string
}

// ConfigFromMap builds a Config from framework-style configuration values
// keyed by the OPENAPI_* constants above. Missing keys keep their zero value;
// values of unexpected types are ignored.
func ConfigFromMap(values map[string]any) Config {
	cfg := Config{
		Prefix:           stringValue(values, KeyURLPrefix),
		JSONPath:         stringValue(values, KeyJSONPath),
		RedocPath:        stringValue(values, KeyRedocPath),
		RedocURL:         stringValue(values, KeyRedocURL),
		RedocVersion:     stringValue(values, KeyRedocVersion),
		SwaggerUIPath:    stringValue(values, KeySwaggerUIPath),
		SwaggerUIURL:     stringValue(values, KeySwaggerUIURL),
		SwaggerUIVersion: stringValue(values, KeySwaggerUIVersion),
	}
	// An explicitly empty list disables "try it out"; only a missing key
	// leaves the field nil so the default set applies.
	switch v := values[KeySwaggerUISupportedSubmitMethods].(type) {
	case []string:
		cfg.SwaggerUISupportedSubmitMethods = make([]string, 0, len(v))
		cfg.SwaggerUISupportedSubmitMethods = append(cfg.SwaggerUISupportedSubmitMethods, v...)
	case []any:
		cfg.SwaggerUISupportedSubmitMethods = make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				cfg.SwaggerUISupportedSubmitMethods = append(cfg.SwaggerUISupportedSubmitMethods, s)
			}
		}
	}
	return cfg
}

func stringValue(values map[string]any, key string) string {
	s, _ := values[key].(string)
	return s
}

// EndpointConfig is the immutable snapshot the server resolves once at route
// registration time.
type EndpointConfig struct {
	Title         string
	Prefix        string
	JSONPath      string
	RedocPath     string
	RedocURL      string
	SwaggerUIPath string
	SwaggerUIURL  string
	SubmitMethods []string
}

// resolveEndpoints derives the endpoint snapshot from cfg. The second return
// is false when no documentation prefix is configured, the terminal disabled
// state.
func resolveEndpoints(title string, cfg Config) (EndpointConfig, bool) {
	if cfg.Prefix == "" {
		return EndpointConfig{}, false
	}

	prefix := strings.TrimRight(addLeadingSlash(cfg.Prefix), "/")

	jsonPath := cfg.JSONPath
	if jsonPath == "" {
		jsonPath = defaultJSONPath
	}

	resolved := EndpointConfig{
		Title:    sanitizeTitle(title),
		Prefix:   prefix,
		JSONPath: prefix + addLeadingSlash(jsonPath),
	}

	if cfg.RedocPath != "" {
		resolved.RedocPath = prefix + addLeadingSlash(cfg.RedocPath)
		resolved.RedocURL = redocScriptURL(cfg.RedocURL, cfg.RedocVersion)
	}

	if cfg.SwaggerUIPath != "" {
		if base, ok := swaggerUIBaseURL(cfg.SwaggerUIURL, cfg.SwaggerUIVersion); ok {
			resolved.SwaggerUIPath = prefix + addLeadingSlash(cfg.SwaggerUIPath)
			resolved.SwaggerUIURL = base
			resolved.SubmitMethods = cfg.SwaggerUISupportedSubmitMethods
			if resolved.SubmitMethods == nil {
				resolved.SubmitMethods = append([]string(nil), defaultSubmitMethods...)
			}
		}
	}

	return resolved, true
}

// redocScriptURL resolves the ReDoc script location. An explicit URL wins.
// Otherwise the version decides the CDN: "latest" and the 1.x line live on
// the ReDoc GitHub CDN, while "next" and the 2.x line live on the jsdelivr
// npm CDN. An empty version means "latest".
func redocScriptURL(explicitURL, version string) string {
	if explicitURL != "" {
		return explicitURL
	}
	if version == "" {
		version = "latest"
	}
	if version == "latest" || strings.HasPrefix(version, "v1") {
		return fmt.Sprintf("https://rebilly.github.io/ReDoc/releases/%s/redoc.min.js", version)
	}
	return fmt.Sprintf("https://cdn.jsdelivr.net/npm/redoc@%s/bundles/redoc.standalone.js", version)
}

// swaggerUIBaseURL resolves the Swagger UI scripts base URL. An explicit URL
// wins; otherwise a cdnjs URL derives from the version. With neither, the
// endpoint cannot be served and the second return is false.
func swaggerUIBaseURL(explicitURL, version string) (string, bool) {
	if explicitURL != "" {
		return addTrailingSlash(explicitURL), true
	}
	if version != "" {
		return fmt.Sprintf("https://cdnjs.cloudflare.com/ajax/libs/swagger-ui/%s/", version), true
	}
	return "", false
}

func addLeadingSlash(s string) string {
	if strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}

func addTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// sanitizeTitle strips any markup from the page title before it lands in the
// viewer HTML.
func sanitizeTitle(title string) string {
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(title))
}
