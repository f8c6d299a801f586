package query

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Request is a GraphQL operation and its variables.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Key returns a stable identifier for the request. Two requests with the same
// query text and variables have the same key regardless of map ordering.
func (r Request) Key() string {
	// encoding/json writes map keys in sorted order.
	data, err := json.Marshal(r)
	if err != nil {
		data = []byte(r.Query)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Equal reports whether r and other have the same key.
func (r Request) Equal(other Request) bool {
	return r.Key() == other.Key()
}
