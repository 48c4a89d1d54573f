// Package schemas embeds the OpenAPI document describing the intake HTTP
// surface. The server validates inbound requests against it at runtime.
package schemas

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3 document for the intake server.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
