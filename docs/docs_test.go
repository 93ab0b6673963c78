package docs

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	paths, ok := parsed["paths"].(map[string]any)
	require.True(t, ok)
	for _, p := range []string{"/api/products", "/api/products/{id}", "/api/products/{id}/order", "/api/products/{id}/restock"} {
		assert.Contains(t, paths, p)
	}
}

// swagger.json es el archivo que sirve la UI de /docs; debe coincidir con el registrado.
func TestSwaggerJSONCoincide(t *testing.T) {
	raw, err := os.ReadFile("swagger.json")
	require.NoError(t, err)

	var fromFile, fromRegistry map[string]any
	require.NoError(t, json.Unmarshal(raw, &fromFile))
	doc, err := swag.ReadDoc()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(doc), &fromRegistry))

	assert.Equal(t, fromFile["paths"], fromRegistry["paths"])
	assert.Equal(t, fromFile["definitions"], fromRegistry["definitions"])
}
