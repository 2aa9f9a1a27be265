package respond

import "github.com/danielgtaylor/huma/v2/negotiation"

// problemFormats puts JSON first so it wins ties.
var problemFormats = []string{
	"application/json",
	"application/problem+json",
	"application/cbor",
	"application/problem+cbor",
}

// prefersCBOR reports whether the client ranks CBOR strictly above JSON.
// Ties, wildcards and unsupported types fall back to JSON.
func prefersCBOR(accept string) bool {
	if accept == "" {
		return false
	}
	switch negotiation.SelectQValue(accept, problemFormats) {
	case "application/cbor", "application/problem+cbor":
		return true
	}
	return false
}
