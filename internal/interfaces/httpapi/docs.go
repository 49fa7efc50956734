package httpapi

import (
	"bytes"
	_ "embed"
	"fmt"
	"hash/crc32"
	"html/template"
	"net/http"
	"regexp"
	"strings"
)

//go:embed openapi.yaml
var openAPISpec []byte

var specVersionLine = regexp.MustCompile(`(?m)^  version: .*$`)

var docsPage = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: '#swagger-ui', deepLinking: true });
    </script>
  </body>
</html>`))

// apiDocs serves the OpenAPI document stamped with the running version and
// the Swagger UI page that renders it.
type apiDocs struct {
	spec []byte
	etag string
	page []byte
}

func newAPIDocs(version string) (*apiDocs, error) {
	spec := openAPISpec
	if v := strings.TrimSpace(version); v != "" {
		spec = specVersionLine.ReplaceAll(openAPISpec, []byte(fmt.Sprintf("  version: %q", v)))
	}

	var page bytes.Buffer
	if err := docsPage.Execute(&page, struct{ Title, SpecURL string }{
		Title:   "Fantasy Coach API Docs",
		SpecURL: "/openapi.yaml",
	}); err != nil {
		return nil, fmt.Errorf("render docs page: %w", err)
	}

	return &apiDocs{
		spec: spec,
		etag: fmt.Sprintf(`"%08x"`, crc32.ChecksumIEEE(spec)),
		page: page.Bytes(),
	}, nil
}

func (d *apiDocs) serveSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", d.etag)
	if r.Header.Get("If-None-Match") == d.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(d.spec)
}

func (d *apiDocs) serveUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(d.page)
}
