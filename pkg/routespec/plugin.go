package routespec

import "github.com/goliatone/go-apidocs/pkg/spec"

// builtinConverters are the converter mappings every document starts with.
// Callers register additional converters through the registry; duplicate
// names overwrite these defaults.
var builtinConverters = []struct {
	name   string
	typ    string
	format string
}{
	{"string", "string", ""},
	{"int", "integer", "int32"},
	{"float", "number", ""},
	{"path", "string", ""},
	{"uuid", "string", "uuid"},
	{"any", "string", ""},
}

// Plugin installs the built-in path converter mappings on a freshly
// constructed document.
type Plugin struct{}

// Ensure the implementation satisfies the public interface.
var _ spec.Plugin = Plugin{}

// NewPlugin returns the converter plugin.
func NewPlugin() Plugin {
	return Plugin{}
}

// Name implements spec.Plugin.
func (Plugin) Name() string { return "routespec" }

// Install implements spec.Plugin.
func (Plugin) Install(doc spec.Document) error {
	for _, c := range builtinConverters {
		doc.RegisterConverter(c.name, c.typ, c.format)
	}
	return nil
}

// AddRoute translates rule and merges the operation into the document's path
// item, attaching the translated path parameters ahead of any the operation
// already declares.
func AddRoute(doc spec.Document, method, rule string, op spec.Operation) error {
	path, params, err := Translate(rule, doc)
	if err != nil {
		return err
	}
	if len(params) > 0 {
		op.Parameters = append(params, op.Parameters...)
	}
	return doc.AddPath(path, map[string]spec.Operation{method: op})
}
