package routes

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/skillswap/docs"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

// Every JSON endpoint the engine serves is described in the swagger document.
func TestSwaggerCoversRoutes(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	undocumented := map[string]bool{
		"GET /":             true,
		"GET /healthz":      true,
		"GET /metrics":      true,
		"GET /swagger/*any": true,
		"GET /auth/signin":  true,
		"GET /auth/signup":  true,
	}
	for _, route := range newEngine(t).Routes() {
		if undocumented[route.Method+" "+route.Path] {
			continue
		}
		path := pathParam.ReplaceAllString(route.Path, "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "missing path %s", path) {
			assert.Contains(t, ops, strings.ToLower(route.Method), "missing %s %s", route.Method, path)
		}
	}
}
