package spec

// Plugin contributes spec fragments to a freshly constructed document. Each
// concern gets its own small implementation and plugins compose by explicit
// list; there is no discovery mechanism.
type Plugin interface {
	// Name identifies the plugin in errors.
	Name() string

	// Install applies the plugin's contributions to the document.
	Install(doc Document) error
}

// FieldTypePlugin maps a set of Go types to OpenAPI type/format pairs at
// install time. It is the thin shim between a schema library's custom field
// types and the document model's field-type registry.
type FieldTypePlugin struct {
	// Mappings pairs sample values with the OpenAPI type/format their Go
	// types document as.
	Mappings map[any]TypeFormat
}

// Name implements Plugin.
func (p FieldTypePlugin) Name() string { return "fieldtypes" }

// Install implements Plugin.
func (p FieldTypePlugin) Install(doc Document) error {
	for sample, tf := range p.Mappings {
		doc.MapFieldType(sample, tf.Type, tf.Format)
	}
	return nil
}

// ConverterPlugin maps path-parameter converter names to OpenAPI type/format
// pairs at install time, for frameworks shipping their own converter set.
type ConverterPlugin struct {
	Mappings map[string]TypeFormat
}

// Name implements Plugin.
func (p ConverterPlugin) Name() string { return "converters" }

// Install implements Plugin.
func (p ConverterPlugin) Install(doc Document) error {
	for name, tf := range p.Mappings {
		doc.RegisterConverter(name, tf.Type, tf.Format)
	}
	return nil
}
