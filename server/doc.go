// Package server provides the HTTP server: a Gin engine behind a root
// ServeMux, served over HTTP/1.1 and h2c.
//
// The middleware stack (server/middleware) wraps the whole handler, so it
// also covers 404 and 405 answers:
//
//   - Recovery: panic recovery answering {"error": "..."}
//   - RequestID: X-Request-Id propagation into the request context
//   - CORS: cross-origin headers and preflight answers
//   - BodySizeLimit: request body cap
//   - RequestLogger: one log line per request
//
// Built-in endpoints (server/endpoint) are /health, aggregating component
// health, and /info, reporting the build.
package server
