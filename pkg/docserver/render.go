package docserver

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/flosch/pongo2/v6"
)

// TemplateRenderer renders a named viewer template with the given context.
// The default implementation serves the embedded templates through pongo2;
// callers can swap in their own to restyle the viewer pages.
type TemplateRenderer interface {
	Render(name string, context map[string]any) (string, error)
}

type templateEngine struct {
	set *pongo2.TemplateSet
}

// Ensure the implementation satisfies the public interface.
var _ TemplateRenderer = (*templateEngine)(nil)

// newTemplateEngine builds a pongo2-backed renderer over fsys.
func newTemplateEngine(fsys fs.FS) *templateEngine {
	return &templateEngine{
		set: pongo2.NewSet("apidocs", pongo2.NewFSLoader(fsys)),
	}
}

// Render loads name (with the ".tpl" extension appended when missing) from
// the template set cache and executes it.
func (e *templateEngine) Render(name string, context map[string]any) (string, error) {
	path := name
	if fs.ValidPath(path) && !hasTemplateExt(path) {
		path += templateExt
	}

	tmpl, err := e.set.FromCache(path)
	if err != nil {
		return "", fmt.Errorf("docserver: load template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(context), &buf); err != nil {
		return "", fmt.Errorf("docserver: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

const templateExt = ".tpl"

func hasTemplateExt(path string) bool {
	return len(path) >= len(templateExt) && path[len(path)-len(templateExt):] == templateExt
}
