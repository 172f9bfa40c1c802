// Package server provides HTTP routing, middleware, and the JSON handlers of the Audius proxy.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// Unknown paths and wrong methods are answered with JSON errors after passing through the middleware
// stack, so CORS headers and request logging apply to them as well.
//
// # Middleware
//
//   - [RequestID] tags each request with a uuid, echoed as X-Request-ID
//   - [Logging] logs method, path, status and duration through charmbracelet/log
//   - [Recover] turns handler panics into 500 {"error":"Internal server error"}
//   - [CORS] allows every origin and answers preflight OPTIONS with 204
//
// # Catalog Handler
//
// [CatalogHandler] serves the proxy endpoints. Each request runs the same pipeline:
//
//	parameter validation -> upstream call -> filter.Transformer -> JSON response
//
// Search endpoints differ only in their [filter.Policy] and failure message:
//
//	GET /audius-search       relevance only, 10 per page
//	GET /audius-search-new   streamable, duration, relevance, 20 per page
//	GET /audius-hindi        streamable, duration, vocabulary, 20 per page
//	GET /audius-trending     streamable, 20 per page
//	GET /audius-stream       redirect target of a track's audio
//	GET /health              liveness
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
