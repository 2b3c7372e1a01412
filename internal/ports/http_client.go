package ports

import "net/http"

// HTTPClient sends requests to a node's service endpoint.
// *http.Client satisfies it; tests substitute a round-trip stub.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
