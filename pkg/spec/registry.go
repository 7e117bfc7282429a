package spec

import "sync"

// DeferredField records a field-type mapping requested before the live
// document exists. When Like is set the mapping is borrowed from the type of
// Like at apply time instead of the explicit Type/Format pair.
type DeferredField struct {
	Sample any
	Type   string
	Format string
	Like   any
}

// DeferredConverter records a path-converter mapping requested before the
// live document exists.
type DeferredConverter struct {
	Name   string
	Type   string
	Format string
}

// DeferredDefinition records a named schema registration requested before the
// live document exists.
type DeferredDefinition struct {
	Name    string
	Schema  any
	Options []DefinitionOption
}

// Registry buffers registrations made before the live document is assembled
// and replays them, in original order, once it is. After binding it becomes a
// pass-through: every call is recorded and applied to the document
// immediately.
//
// A single Registry is expected to feed a single document for the life of the
// process. Registration is safe to interleave with document reads, but the
// intended pattern is single-writer during startup.
type Registry struct {
	mu          sync.Mutex
	fields      []DeferredField
	converters  []DeferredConverter
	definitions []DeferredDefinition
	doc         Document
}

// NewRegistry creates an empty, unbound registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterField records a field-type mapping. If the live document exists the
// mapping is applied to it immediately as well. Re-registering the same type
// overwrites its mapping in the underlying store; the registry itself never
// rejects a registration.
func (r *Registry) RegisterField(sample any, typ, format string) {
	r.registerField(DeferredField{Sample: sample, Type: typ, Format: format})
}

// RegisterFieldLike maps the Go type of sample to whatever mapping the type
// of like carries when the registration is applied. A like type with no
// mapping of its own leaves sample on its default schema.
func (r *Registry) RegisterFieldLike(sample, like any) {
	r.registerField(DeferredField{Sample: sample, Like: like})
}

func (r *Registry) registerField(field DeferredField) {
	r.mu.Lock()
	r.fields = append(r.fields, field)
	doc := r.doc
	r.mu.Unlock()

	if doc != nil {
		applyField(doc, field)
	}
}

func applyField(doc Document, field DeferredField) {
	if field.Like != nil {
		if tf, ok := doc.FieldType(field.Like); ok {
			doc.MapFieldType(field.Sample, tf.Type, tf.Format)
		}
		return
	}
	doc.MapFieldType(field.Sample, field.Type, field.Format)
}

// RegisterConverter records a path-converter mapping, applying it immediately
// when the live document exists. Duplicates are not detected; they re-apply.
// Converters must be registered before any route referencing them is
// documented, otherwise that route's parameter type falls back to the
// default.
func (r *Registry) RegisterConverter(name, typ, format string) {
	r.mu.Lock()
	r.converters = append(r.converters, DeferredConverter{Name: name, Type: typ, Format: format})
	doc := r.doc
	r.mu.Unlock()

	if doc != nil {
		doc.RegisterConverter(name, typ, format)
	}
}

// AddDefinition records a named schema registration, applying it immediately
// when the live document exists. The schema value is returned unchanged so
// call sites can keep using it for later references.
func (r *Registry) AddDefinition(name string, schema any, options ...DefinitionOption) any {
	r.mu.Lock()
	r.definitions = append(r.definitions, DeferredDefinition{Name: name, Schema: schema, Options: options})
	doc := r.doc
	r.mu.Unlock()

	if doc != nil {
		// Registration never fails at this layer; name collisions are
		// last-write-wins in the underlying store.
		_ = doc.AddDefinition(name, schema, options...)
	}
	return schema
}

// Definition returns a registration func for name, mirroring decorator-style
// usage: the returned func records the schema and hands it back unchanged.
func (r *Registry) Definition(name string, options ...DefinitionOption) func(schema any) any {
	return func(schema any) any {
		return r.AddDefinition(name, schema, options...)
	}
}

// Bind attaches the live document and replays every deferred registration in
// original registration order: fields first, then definitions, then
// converters. Registrations made after Bind apply directly to doc.
func (r *Registry) Bind(doc Document) error {
	r.mu.Lock()
	r.doc = doc
	fields := append([]DeferredField(nil), r.fields...)
	definitions := append([]DeferredDefinition(nil), r.definitions...)
	converters := append([]DeferredConverter(nil), r.converters...)
	r.mu.Unlock()

	for _, f := range fields {
		applyField(doc, f)
	}
	for _, d := range definitions {
		if err := doc.AddDefinition(d.Name, d.Schema, d.Options...); err != nil {
			return err
		}
	}
	for _, c := range converters {
		doc.RegisterConverter(c.Name, c.Type, c.Format)
	}
	return nil
}

// Bound reports whether the registry has a live document attached.
func (r *Registry) Bound() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc != nil
}
