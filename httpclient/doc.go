// Package httpclient provides the outbound HTTP client used to talk to media
// hosts and transcription providers.
//
// Every call is a single attempt. Non-2xx responses are returned together
// with a classified *Error that keeps the status code and body so callers
// can build their own domain errors from them.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.supadata.ai",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.HeaderCredential("x-api-key", key),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/v1/transcript",
//	    Query:  map[string]string{"url": src},
//	})
package httpclient
