package httpclient

import (
	"fmt"
	"net/http"

	"github.com/kbukum/sypnna/util"
)

// DefaultCredentialHeader is used when a Credential names no header.
const DefaultCredentialHeader = "X-API-Key"

// Credential is a secret sent as-is in one header on every request.
type Credential struct {
	Header string
	Value  string
}

// HeaderCredential sends value as-is in the named header.
func HeaderCredential(header, value string) *Credential {
	return &Credential{Header: header, Value: value}
}

// String masks the secret so a Credential can be logged.
func (c *Credential) String() string {
	if c == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s: %s", c.header(), util.MaskSecret(c.Value, 4))
}

func (c *Credential) header() string {
	if c.Header == "" {
		return DefaultCredentialHeader
	}
	return c.Header
}

func (c *Credential) apply(req *http.Request) {
	if c == nil || c.Value == "" {
		return
	}
	req.Header.Set(c.header(), c.Value)
}
