package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/sinko/hello-service/internal/http/v1/hello"
)

// Prefix is the path every v1 operation is mounted under.
const Prefix = "/api/v1"

// Register wires all v1 routes into api under Prefix.
func Register(api huma.API, serviceName string) {
	v1 := huma.NewGroup(api, Prefix)
	hello.Register(v1, serviceName)
}
