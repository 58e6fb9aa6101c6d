package logger

import "time"

// Field keys shared across packages.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldProvider  = "provider"
	FieldJobID     = "job_id"
	FieldSourceURL = "source_url"
	FieldCode      = "code"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldBytes     = "bytes"
)

// Fields builds a field map from alternating key-value pairs. Non-string
// keys and a trailing odd value are dropped.
//
//	logger.Fields(logger.FieldProvider, "assemblyai", logger.FieldJobID, id)
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// RequestFields describes one served HTTP request.
func RequestFields(method, path string, status int, bytes int64, elapsed time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldMethod:   method,
		FieldPath:     path,
		FieldStatus:   status,
		FieldBytes:    bytes,
		FieldDuration: elapsed.Milliseconds(),
	}
}

// MergeWithError adds an error field to fields, allocating when nil.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{}, 1)
	}
	fields[FieldError] = err.Error()
	return fields
}
