// Package upstream is the gateway's only path to the catalog REST API.
//
// Structure:
//
//	client.go   - HTTP client with optional rate limiting, logging and metrics
//	errors.go   - HTTPError (non-2xx response) and TransportError (network fault)
//	catalog.go  - one method per catalog endpoint, returning typed DTOs
//	types.go    - Track, Author and Module DTOs
//	metrics.go  - prometheus collectors for outbound requests
//
// Nothing here retries, caches or deduplicates: each call is one HTTP request.
package upstream
