// Package docs serves the interactive API documentation at a fixed path.
//
// The OpenAPI document lives in openapi.yaml next to this file and is
// compiled into the binary with go:embed — the service has no runtime
// file dependencies. Its schemas state the same field rules the validator
// enforces (minLength, pattern, format, minimum/maximum), so the docs and
// the behaviour can only drift if someone edits one without the other.
//
// New parses the document at startup. That buys two things: a malformed
// document fails the boot instead of surfacing as a broken docs page
// later, and the servers entry can be rewritten to the address this
// process actually listens on.
package docs

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Docs holds the patched OpenAPI document, ready to serve.
type Docs struct {
	spec []byte
}

// New parses the embedded OpenAPI document and points its servers entry
// at addr (a listen address like ":8080" or "localhost:8080").
func New(addr string) (*Docs, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(openapiYAML, &doc); err != nil {
		return nil, fmt.Errorf("docs: parse openapi document: %w", err)
	}

	doc["servers"] = []any{
		map[string]any{"url": baseURL(addr)},
	}

	spec, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("docs: marshal openapi document: %w", err)
	}

	return &Docs{spec: spec}, nil
}

// baseURL turns a listen address into something a browser can call:
// ":8080" listens on every interface, so localhost is the address to
// document.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// Spec handles GET /docs/openapi.yaml — the raw OpenAPI document, which
// is also what the UI page below loads.
func (d *Docs) Spec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(d.spec)
}

// UI handles GET /docs — a minimal Swagger UI page driven entirely by the
// served document.
func (d *Docs) UI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(swaggerPage))
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <title>users-api documentation</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    SwaggerUIBundle({
      url: "/docs/openapi.yaml",
      dom_id: "#swagger-ui",
    });
  };
</script>
</body>
</html>
`
