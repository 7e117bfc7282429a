// Package kindoc implements the spec.Builder and spec.Document contracts on
// top of kin-openapi. The library ships two incompatible document APIs,
// openapi2 and openapi3; the builder resolves the target major version once
// at construction and every later registration dispatches through the
// matching backend.
package kindoc

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-apidocs/pkg/spec"
)

// Builder constructs kin-openapi backed documents.
type Builder struct{}

// Ensure the implementation satisfies the public interface.
var _ spec.Builder = Builder{}

// NewBuilder returns the default document builder.
func NewBuilder() Builder {
	return Builder{}
}

// Construct builds the live document for the given OpenAPI version, applies
// the construction options, and installs the plugins in order. A malformed
// version string is a fatal configuration error.
func (Builder) Construct(title, apiVersion, openapiVersion string, plugins []spec.Plugin, options map[string]any) (spec.Document, error) {
	major, err := majorVersion(openapiVersion)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		openapiVersion: openapiVersion,
		fieldTypes:     map[reflect.Type]spec.TypeFormat{},
		converters:     map[string]spec.TypeFormat{},
	}

	info := openapi3.Info{
		Title:   title,
		Version: apiVersion,
	}

	if major < 3 {
		doc.refPrefix = "#/definitions/"
		doc.v2 = &openapi2.T{
			Swagger:     "2.0",
			Info:        info,
			Paths:       map[string]*openapi2.PathItem{},
			Definitions: map[string]*openapi2.SchemaRef{},
		}
		applyOptionsV2(doc.v2, options)
	} else {
		doc.refPrefix = "#/components/schemas/"
		doc.v3 = &openapi3.T{
			OpenAPI: openapiVersion,
			Info:    &info,
			Paths:   openapi3.NewPaths(),
			Components: &openapi3.Components{
				Schemas: openapi3.Schemas{},
			},
		}
		applyOptionsV3(doc.v3, options)
	}

	for _, plugin := range plugins {
		if plugin == nil {
			continue
		}
		if err := plugin.Install(doc); err != nil {
			return nil, fmt.Errorf("kindoc: install plugin %q: %w", plugin.Name(), err)
		}
	}

	return doc, nil
}

func majorVersion(version string) (int, error) {
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("kindoc: malformed OpenAPI version %q: %w", version, err)
	}
	return major, nil
}

func applyOptionsV2(t *openapi2.T, options map[string]any) {
	for key, value := range options {
		switch key {
		case "basePath":
			if s, ok := value.(string); ok {
				t.BasePath = s
			}
		case "host":
			if s, ok := value.(string); ok {
				t.Host = s
			}
		case "produces":
			t.Produces = toStringSlice(value)
		case "consumes":
			t.Consumes = toStringSlice(value)
		case "schemes":
			t.Schemes = toStringSlice(value)
		default:
			if t.Extensions == nil {
				t.Extensions = map[string]any{}
			}
			t.Extensions[key] = value
		}
	}
}

func applyOptionsV3(t *openapi3.T, options map[string]any) {
	for key, value := range options {
		switch key {
		case "servers":
			for _, url := range toStringSlice(value) {
				t.Servers = append(t.Servers, &openapi3.Server{URL: url})
			}
		default:
			if t.Extensions == nil {
				t.Extensions = map[string]any{}
			}
			t.Extensions[key] = value
		}
	}
}

func toStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}
