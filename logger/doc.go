// Package logger provides structured logging backed by zerolog.
//
// Output is JSON or a colored console format. Loggers are scoped per
// component through Get and pick up the request id carried in a context.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("transcriber")
//	log.Info("job created", logger.Fields("job_id", id))
package logger
