package swagger

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"), // URL to the OpenAPI spec served at root
	)
}

// ValidateSpec parses and validates the OpenAPI document before the server
// starts serving it, so a malformed spec fails fast instead of breaking the
// docs UI at request time.
func ValidateSpec(path string) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load openapi spec %s: %w", path, err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("validate openapi spec %s: %w", path, err)
	}
	return nil
}
