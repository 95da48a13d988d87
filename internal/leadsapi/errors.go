package leadsapi

import (
	"fmt"
	"strings"
)

// Error is a non-success response from the Leads API or Auth Gateway.
type Error struct {
	Op          string
	StatusCode  int
	ContentType string
	Body        []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("leadsapi %s: upstream status %d", e.Op, e.StatusCode)
}

// ResponseBody exposes the raw body for error normalization.
func (e *Error) ResponseBody() []byte { return e.Body }

// MaybeHTML reports whether the body could be an HTML error page: the
// response said text/html or did not say anything.
func (e *Error) MaybeHTML() bool {
	ct := strings.ToLower(strings.TrimSpace(e.ContentType))
	return ct == "" || strings.Contains(ct, "text/html")
}
