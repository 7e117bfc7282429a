package docserver

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded viewer templates so callers can reuse or
// extend them with a custom TemplateRenderer.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// unreachable: the embed directive guarantees the subpath exists
		panic(err)
	}
	return sub
}
