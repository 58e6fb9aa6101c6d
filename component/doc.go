// Package component defines the lifecycle contract shared by the long-lived
// parts of the service: the HTTP server, the media staging area and the
// audio extractor.
//
// A Registry starts components in registration order, stops them in reverse
// order and aggregates their health for the /health endpoint and the
// startup summary.
package component
