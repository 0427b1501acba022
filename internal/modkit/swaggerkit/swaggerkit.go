// Package swaggerkit serves the swagger ui and the generated spec under /api/docs
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	perr "csvsplit/internal/platform/errors"
	phttp "csvsplit/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsPath  = "/api/docs"
	serverURL = "/api/v1"
)

// Mount serves the ui at /api/docs/ and the openapi document from readDoc at /api/docs/doc.json
func Mount(r phttp.Router, enabled bool, readDoc func() string) {
	if !enabled {
		return
	}
	r.Get(docsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsPath+"/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		spec, err := normalize(readDoc())
		if err != nil {
			status, env := phttp.ErrorEnvelope(err, "")
			phttp.JSON(w, status, env)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		phttp.JSON(w, http.StatusOK, spec)
	})
	r.Handle(docsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docsPath+"/doc.json"),
	))
}

// normalize pins the document to openapi 3.0.3 with /api/v1 as its server
// and gives every operation a 500 in the envelope shape
func normalize(raw string) (map[string]any, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, perr.JSONErrf("swagger doc: %v", err)
	}

	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": serverURL}}
	}

	internal := map[string]any{
		"description": "Internal Server Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/http.Envelope"},
			},
		},
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			if _, ok := resps["500"]; !ok {
				resps["500"] = internal
			}
		}
	}
	return spec, nil
}
