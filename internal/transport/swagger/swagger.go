// Package swagger serves the interactive API docs backed by the
// OpenAPI document mounted at /openapi.yml.
package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
		httpSwagger.DocExpansion("list"),
	)
}
