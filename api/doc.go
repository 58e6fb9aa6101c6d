// Package api holds the public HTTP handlers of the service.
package api
