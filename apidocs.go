// Package apidocs assembles an OpenAPI document from registrations made
// anywhere in an application and serves it, together with interactive
// viewers, through a pluggable route registrar. Registrations may happen
// before or after assembly: earlier ones are buffered and replayed in order,
// later ones apply immediately.
package apidocs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-apidocs/internal/kindoc"
	"github.com/goliatone/go-apidocs/pkg/docinfo"
	"github.com/goliatone/go-apidocs/pkg/docserver"
	"github.com/goliatone/go-apidocs/pkg/routespec"
	"github.com/goliatone/go-apidocs/pkg/spec"
)

// Option customises the API during construction.
type Option func(*API)

// WithTitle sets the application display name used in the document info
// block and the viewer page titles.
func WithTitle(title string) Option {
	return func(a *API) {
		a.settings.Title = title
	}
}

// WithAPIVersion sets the documented API's version string.
func WithAPIVersion(version string) Option {
	return func(a *API) {
		a.settings.APIVersion = version
	}
}

// WithOpenAPIVersion selects the OpenAPI format version, e.g. "2.0" or
// "3.0.2".
func WithOpenAPIVersion(version string) Option {
	return func(a *API) {
		a.settings.OpenAPIVersion = version
	}
}

// WithApplicationRoot sets the application's root mount path. OpenAPI 2.x
// documents default their basePath to it unless it is "/".
func WithApplicationRoot(root string) Option {
	return func(a *API) {
		a.settings.ApplicationRoot = root
	}
}

// WithSpecOptions merges extra document construction options. They take
// precedence over computed defaults.
func WithSpecOptions(options map[string]any) Option {
	return func(a *API) {
		a.settings.ExtraOptions = docinfo.DeepUpdate(a.settings.ExtraOptions, options)
	}
}

// WithPlugins appends plugins installed after the built-in ones.
func WithPlugins(plugins ...spec.Plugin) Option {
	return func(a *API) {
		a.settings.ExtraPlugins = append(a.settings.ExtraPlugins, plugins...)
	}
}

// WithBuilder injects a custom document builder.
func WithBuilder(builder spec.Builder) Option {
	return func(a *API) {
		if builder != nil {
			a.builder = builder
		}
	}
}

// WithDocConfig sets the documentation endpoint configuration.
func WithDocConfig(cfg docserver.Config) Option {
	return func(a *API) {
		a.docConfig = cfg
	}
}

// WithDocConfigMap sets the documentation endpoint configuration from
// framework-style OPENAPI_* keys.
func WithDocConfigMap(values map[string]any) Option {
	return func(a *API) {
		a.docConfig = docserver.ConfigFromMap(values)
	}
}

// WithTemplateRenderer swaps the renderer used for the viewer pages.
func WithTemplateRenderer(renderer docserver.TemplateRenderer) Option {
	return func(a *API) {
		a.renderer = renderer
	}
}

// API ties the deferred-registration registry, the assembled document, and
// the documentation endpoints together. One API value serves one application
// for its whole lifetime; the document is assembled exactly once.
//
// Registration calls are expected to complete during single-threaded startup
// before requests are served concurrently. Late registrations are applied
// under the document's lock and show up in the next serialisation, but
// callers interleaving writers get no ordering guarantees.
type API struct {
	settings  spec.Settings
	registry  *spec.Registry
	builder   spec.Builder
	docConfig docserver.Config
	renderer  docserver.TemplateRenderer

	doc    spec.Document
	server *docserver.Server
}

// New creates an unassembled API. Registrations are accepted immediately and
// buffered until Assemble.
func New(options ...Option) *API {
	a := &API{
		registry: spec.NewRegistry(),
		builder:  kindoc.NewBuilder(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	a.settings = a.settings.Normalize()
	return a
}

// RegisterField maps the Go type of sample to an OpenAPI type and format.
// Safe to call before or after Assemble; the latest registration for a type
// wins.
func (a *API) RegisterField(sample any, typ, format string) {
	a.registry.RegisterField(sample, typ, format)
}

// RegisterFieldLike maps the Go type of sample to the mapping already
// registered for the type of like, e.g. documenting a wrapper type the same
// way as the type it wraps.
func (a *API) RegisterFieldLike(sample, like any) {
	a.registry.RegisterFieldLike(sample, like)
}

// RegisterConverter maps a path-parameter converter name to an OpenAPI type
// and format. Call it before documenting routes that reference the
// converter, otherwise those parameters fall back to plain strings.
func (a *API) RegisterConverter(name, typ, format string) {
	a.registry.RegisterConverter(name, typ, format)
}

// AddDefinition registers a named schema and returns the schema value
// unchanged so call sites can keep referencing it.
func (a *API) AddDefinition(name string, schema any, options ...spec.DefinitionOption) any {
	return a.registry.AddDefinition(name, schema, options...)
}

// Definition returns a registration func for name, for decorator-style call
// sites:
//
//	var petSchema = api.Definition("Pet")(Pet{})
func (a *API) Definition(name string, options ...spec.DefinitionOption) func(schema any) any {
	return a.registry.Definition(name, options...)
}

// Assemble constructs the live document and replays every buffered
// registration in original order. It must be called exactly once; a
// malformed OpenAPI version string is a fatal configuration error.
func (a *API) Assemble() error {
	if a.doc != nil {
		return errors.New("apidocs: document already assembled")
	}

	options, err := a.settings.SpecOptions()
	if err != nil {
		return err
	}

	plugins := append([]spec.Plugin{routespec.NewPlugin()}, a.settings.ExtraPlugins...)
	doc, err := a.builder.Construct(
		a.settings.Title,
		a.settings.APIVersion,
		a.settings.OpenAPIVersion,
		plugins,
		options,
	)
	if err != nil {
		return err
	}

	if err := a.registry.Bind(doc); err != nil {
		return err
	}
	a.doc = doc
	return nil
}

// Document returns the live document, or nil before Assemble.
func (a *API) Document() spec.Document {
	return a.doc
}

// Route documents a single route: the rule is translated into an OpenAPI
// path template with typed path parameters and the operation is merged into
// the document. Requires Assemble.
func (a *API) Route(method, rule string, op spec.Operation) error {
	if a.doc == nil {
		return errors.New("apidocs: assemble before documenting routes")
	}
	return routespec.AddRoute(a.doc, method, rule, op)
}

// OperationFromDoc builds an operation skeleton from handler documentation
// text: the first paragraph becomes the summary, the remainder up to a "---"
// line becomes the description.
func OperationFromDoc(docText string) spec.Operation {
	info := docinfo.LoadInfo(docText)
	return spec.Operation{
		Summary:     info.Summary,
		Description: info.Description,
	}
}

// RegisterDocRoutes resolves the endpoint configuration once and registers
// the enabled documentation endpoints on r. With no documentation prefix
// configured this is a no-op. Requires Assemble.
func (a *API) RegisterDocRoutes(r docserver.Registrar) error {
	if a.doc == nil {
		return errors.New("apidocs: assemble before registering doc routes")
	}
	if a.server == nil {
		var opts []docserver.Option
		if a.renderer != nil {
			opts = append(opts, docserver.WithTemplateRenderer(a.renderer))
		}
		a.server = docserver.New(a.doc, a.settings.Title, a.docConfig, opts...)
	}
	a.server.RegisterRoutes(r)
	return nil
}

// ToJSON serialises the document as pretty-printed JSON, preserving the key
// order the document model produces.
func (a *API) ToJSON() ([]byte, error) {
	if a.doc == nil {
		return nil, errors.New("apidocs: assemble before serialising")
	}
	data, err := a.doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("apidocs: serialise document: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("apidocs: indent document: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAML serialises the document as YAML.
func (a *API) ToYAML() ([]byte, error) {
	if a.doc == nil {
		return nil, errors.New("apidocs: assemble before serialising")
	}
	data, err := a.doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("apidocs: serialise document: %w", err)
	}
	var value map[string]any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("apidocs: decode document: %w", err)
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("apidocs: encode yaml: %w", err)
	}
	return out, nil
}
