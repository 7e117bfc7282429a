// Package spec holds the public contracts of the documentation pipeline: the
// live document and its builder, the deferred-registration registry, and the
// plugin interfaces used to contribute spec fragments.
package spec

import "encoding/json"

// TypeFormat pairs an OpenAPI primitive type with an optional format
// qualifier, e.g. {"string", "uuid"}.
type TypeFormat struct {
	Type   string
	Format string
}

// Document is the live, mutable OpenAPI document assembled once per
// application lifetime. Implementations own the underlying document model;
// callers mutate it only through these registration methods.
//
// All mutating calls are expected to complete during application
// initialisation, before the document is served concurrently. Implementations
// guard internal state so that serialisation can run while late registrations
// arrive, but interleaving registrations with reads yields no ordering
// guarantees between them.
type Document interface {
	json.Marshaler

	// AddDefinition registers a named schema so it can be referenced
	// throughout the spec. schema may be a Go value (reflected into a
	// schema), a raw JSON schema object (map[string]any or json.RawMessage),
	// or a document-model schema. Registering an existing name overwrites it.
	AddDefinition(name string, schema any, options ...DefinitionOption) error

	// MapFieldType maps the Go type of sample to an OpenAPI type and format.
	// Re-registering the same type overwrites the previous mapping.
	MapFieldType(sample any, typ, format string)

	// FieldType resolves the mapping registered for the Go type of sample.
	FieldType(sample any) (TypeFormat, bool)

	// RegisterConverter maps a path-parameter converter name to an OpenAPI
	// type and format. Duplicate registrations simply re-apply.
	RegisterConverter(name, typ, format string)

	// ConverterType resolves a previously registered converter name.
	ConverterType(name string) (TypeFormat, bool)

	// AddPath merges the given operations, keyed by upper-case HTTP method,
	// into the path item at path.
	AddPath(path string, operations map[string]Operation) error

	// OpenAPIVersion returns the full version string the document targets.
	OpenAPIVersion() string
}

// Builder constructs the live document with version-appropriate options. The
// options map carries document-level settings (basePath, produces, consumes,
// host, schemes); keys the backend does not recognise are stored as
// extensions.
type Builder interface {
	Construct(title, apiVersion, openapiVersion string, plugins []Plugin, options map[string]any) (Document, error)
}

// DefinitionOptions carries keyword options applied to a definition schema
// after generation.
type DefinitionOptions struct {
	Description string
	Required    []string
	Example     any
}

// DefinitionOption customises a definition registration.
type DefinitionOption func(*DefinitionOptions)

// WithDescription sets the definition description.
func WithDescription(description string) DefinitionOption {
	return func(o *DefinitionOptions) {
		o.Description = description
	}
}

// WithRequired marks properties as required on the definition.
func WithRequired(names ...string) DefinitionOption {
	return func(o *DefinitionOptions) {
		if len(names) == 0 {
			return
		}
		o.Required = append(o.Required, names...)
	}
}

// WithExample attaches an example value to the definition.
func WithExample(example any) DefinitionOption {
	return func(o *DefinitionOptions) {
		o.Example = example
	}
}

// NewDefinitionOptions resolves a DefinitionOptions from the option list.
func NewDefinitionOptions(options ...DefinitionOption) DefinitionOptions {
	var opts DefinitionOptions
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}

// Parameter documents a single operation parameter.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	Type        string
	Format      string
}

// Response documents a single operation response, optionally referencing a
// named definition.
type Response struct {
	Description string
	SchemaRef   string
}

// Operation is the backend-neutral description of a path operation. The
// document implementation translates it into the version-appropriate model.
type Operation struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	Responses   map[string]Response
}
