package kindoc

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-apidocs/pkg/spec"
)

// Document is the live kin-openapi backed document. Exactly one of v2/v3 is
// non-nil for the lifetime of the value; the choice is made once at
// construction and threaded into every registration through the refPrefix and
// the backend dispatch below.
//
// The expected usage pattern is single-writer during application startup and
// many readers at runtime. A read-write lock keeps late registrations and
// concurrent serialisation from corrupting internal state, but interleaved
// writers get no ordering guarantees.
type Document struct {
	mu sync.RWMutex

	openapiVersion string
	refPrefix      string

	v2 *openapi2.T
	v3 *openapi3.T

	fieldTypes map[reflect.Type]spec.TypeFormat
	converters map[string]spec.TypeFormat
}

// Ensure the implementation satisfies the public interface.
var _ spec.Document = (*Document)(nil)

// OpenAPIVersion implements spec.Document.
func (d *Document) OpenAPIVersion() string {
	return d.openapiVersion
}

// MapFieldType implements spec.Document. Re-registering a type overwrites the
// previous mapping.
func (d *Document) MapFieldType(sample any, typ, format string) {
	t := normalizeType(sample)
	if t == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.fieldTypes[t] = spec.TypeFormat{Type: typ, Format: format}
}

// FieldType implements spec.Document.
func (d *Document) FieldType(sample any) (spec.TypeFormat, bool) {
	t := normalizeType(sample)
	if t == nil {
		return spec.TypeFormat{}, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	tf, ok := d.fieldTypes[t]
	return tf, ok
}

// RegisterConverter implements spec.Document.
func (d *Document) RegisterConverter(name, typ, format string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.converters[name] = spec.TypeFormat{Type: typ, Format: format}
}

// ConverterType implements spec.Document.
func (d *Document) ConverterType(name string) (spec.TypeFormat, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tf, ok := d.converters[name]
	return tf, ok
}

// AddDefinition implements spec.Document. Duplicate names overwrite the
// stored schema.
func (d *Document) AddDefinition(name string, schema any, options ...spec.DefinitionOption) error {
	if name == "" {
		return fmt.Errorf("kindoc: definition name is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ref, err := d.definitionSchemaRef(schema)
	if err != nil {
		return fmt.Errorf("kindoc: definition %q: %w", name, err)
	}

	opts := spec.NewDefinitionOptions(options...)
	if ref.Value != nil {
		if opts.Description != "" {
			ref.Value.Description = opts.Description
		}
		if len(opts.Required) > 0 {
			ref.Value.Required = append(ref.Value.Required, opts.Required...)
		}
		if opts.Example != nil {
			ref.Value.Example = opts.Example
		}
	}

	d.storeDefinition(name, ref)
	return nil
}

// AddPath implements spec.Document, merging the operations into the path item
// through the version-appropriate backend.
func (d *Document) AddPath(path string, operations map[string]spec.Operation) error {
	if path == "" {
		return fmt.Errorf("kindoc: path is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.v2 != nil {
		item, ok := d.v2.Paths[path]
		if !ok {
			item = &openapi2.PathItem{}
			d.v2.Paths[path] = item
		}
		for method, op := range operations {
			item.SetOperation(strings.ToUpper(method), d.operationV2(op))
		}
		return nil
	}

	item := d.v3.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		d.v3.Paths.Set(path, item)
	}
	for method, op := range operations {
		item.SetOperation(strings.ToUpper(method), d.operationV3(op))
	}
	return nil
}

// MarshalJSON serialises the underlying document model. Key order is whatever
// the model produces; no re-sorting happens on top of it.
func (d *Document) MarshalJSON() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.v2 != nil {
		return d.v2.MarshalJSON()
	}
	return d.v3.MarshalJSON()
}

// MarshalYAML renders the document as a YAML-compatible value by round-
// tripping the JSON form.
func (d *Document) MarshalYAML() (any, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// storeDefinition dispatches the registration through the backend selected at
// construction. Schema generation stays on the v3 model; the v2 store
// converts at this boundary. Callers hold the write lock.
func (d *Document) storeDefinition(name string, ref *openapi3.SchemaRef) {
	if d.v2 != nil {
		converted, _ := openapi2conv.FromV3SchemaRef(ref, &openapi3.Components{})
		if converted == nil {
			// Binary strings convert to formData parameters; keep them as
			// plain schemas here.
			converted = &openapi2.SchemaRef{Value: &openapi2.Schema{
				Type:   ref.Value.Type,
				Format: ref.Value.Format,
			}}
		}
		d.v2.Definitions[name] = converted
		return
	}
	d.v3.Components.Schemas[name] = ref
}

func (d *Document) operationV2(op spec.Operation) *openapi2.Operation {
	out := &openapi2.Operation{
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        append([]string(nil), op.Tags...),
	}
	for _, p := range op.Parameters {
		param := &openapi2.Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required,
			Format:      p.Format,
		}
		if p.Type != "" {
			param.Type = &openapi3.Types{p.Type}
		}
		out.Parameters = append(out.Parameters, param)
	}
	out.Responses = map[string]*openapi2.Response{}
	for code, r := range op.Responses {
		response := &openapi2.Response{Description: r.Description}
		if r.SchemaRef != "" {
			response.Schema = &openapi2.SchemaRef{Ref: d.refPrefix + r.SchemaRef}
		}
		out.Responses[code] = response
	}
	if len(out.Responses) == 0 {
		out.Responses["default"] = &openapi2.Response{Description: ""}
	}
	return out
}

func (d *Document) operationV3(op spec.Operation) *openapi3.Operation {
	out := &openapi3.Operation{
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        append([]string(nil), op.Tags...),
	}
	for _, p := range op.Parameters {
		param := &openapi3.Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required,
		}
		if p.Type != "" {
			param.Schema = (&openapi3.Schema{
				Type:   &openapi3.Types{p.Type},
				Format: p.Format,
			}).NewRef()
		}
		out.Parameters = append(out.Parameters, &openapi3.ParameterRef{Value: param})
	}
	responses := &openapi3.Responses{}
	for code, r := range op.Responses {
		response := openapi3.NewResponse().WithDescription(r.Description)
		if r.SchemaRef != "" {
			response.Content = openapi3.NewContentWithJSONSchemaRef(
				openapi3.NewSchemaRef(d.refPrefix+r.SchemaRef, nil))
		}
		responses.Set(code, &openapi3.ResponseRef{Value: response})
	}
	if responses.Len() == 0 {
		responses.Set("default", &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(""),
		})
	}
	out.Responses = responses
	return out
}

func normalizeType(sample any) reflect.Type {
	t, ok := sample.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(sample)
	}
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
