// Package api embeds the OpenAPI document of the registry HTTP surface.
package api

import _ "embed"

// Spec is the OpenAPI 3 document served by handlers.
//
//go:embed my-registry.openapi.yaml
var Spec []byte
