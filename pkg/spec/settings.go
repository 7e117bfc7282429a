package spec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-apidocs/pkg/docinfo"
)

// Default version strings applied when settings omit them.
const (
	DefaultOpenAPIVersion = "2.0"
	DefaultAPIVersion     = "1"
)

// Settings carries the application-level configuration the assembler needs to
// construct the document.
type Settings struct {
	// Title is the application display name used for the document info block.
	Title string

	// APIVersion is the version string of the documented API, not of the
	// OpenAPI format. Defaults to "1".
	APIVersion string

	// OpenAPIVersion selects the OpenAPI format version, e.g. "2.0" or
	// "3.0.2". Defaults to "2.0". The leading component must be numeric.
	OpenAPIVersion string

	// ApplicationRoot is the root mount path of the application. For OpenAPI
	// 2.x documents it becomes the default basePath unless it is exactly "/".
	ApplicationRoot string

	// ExtraOptions are document-level construction options merged last with
	// deep-update semantics, so explicit caller values always win over the
	// computed defaults.
	ExtraOptions map[string]any

	// ExtraPlugins are installed after the built-in plugins.
	ExtraPlugins []Plugin
}

// Normalize fills in defaulted fields and returns the result.
func (s Settings) Normalize() Settings {
	if s.OpenAPIVersion == "" {
		s.OpenAPIVersion = DefaultOpenAPIVersion
	}
	if s.APIVersion == "" {
		s.APIVersion = DefaultAPIVersion
	}
	return s
}

// Major parses the leading component of the OpenAPI version string. A
// non-numeric leading component is a fatal configuration error.
func (s Settings) Major() (int, error) {
	version := s.OpenAPIVersion
	if version == "" {
		version = DefaultOpenAPIVersion
	}
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("spec: malformed OpenAPI version %q: %w", version, err)
	}
	return major, nil
}

// SpecOptions computes the document construction options: version-appropriate
// defaults overlaid with ExtraOptions, which always take precedence.
//
// For OpenAPI 2.x targets, basePath defaults to ApplicationRoot unless the
// root is exactly "/", and produces/consumes default to JSON.
func (s Settings) SpecOptions() (map[string]any, error) {
	major, err := s.Major()
	if err != nil {
		return nil, err
	}

	options := map[string]any{}
	if major < 3 {
		if s.ApplicationRoot != "" && s.ApplicationRoot != "/" {
			options["basePath"] = s.ApplicationRoot
		}
		options["produces"] = []string{"application/json"}
		options["consumes"] = []string{"application/json"}
	}
	return docinfo.DeepUpdate(options, s.ExtraOptions), nil
}
