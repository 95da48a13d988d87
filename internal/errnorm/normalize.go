// Package errnorm reduces upstream failures to one display string.
package errnorm

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fallback is shown when nothing better can be extracted.
const Fallback = "Server error"

// ResponseError is a failure that carries the raw upstream response body.
type ResponseError interface {
	error
	ResponseBody() []byte
}

// htmlHint is implemented by errors that know the response content type.
type htmlHint interface {
	MaybeHTML() bool
}

// Message returns the display string for err. It never returns "".
func Message(err error) string {
	var re ResponseError
	if err == nil || !errors.As(err, &re) {
		return Fallback
	}

	body := re.ResponseBody()
	if msg := jsonMessage(body); msg != "" {
		return msg
	}
	if h, ok := re.(htmlHint); ok && !h.MaybeHTML() {
		return Fallback
	}
	if msg := preMessage(body); msg != "" {
		return msg
	}
	return Fallback
}

// jsonMessage reads {"message": "..."} or {"error": {"message": "..."}}.
func jsonMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return ""
	}

	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}

	var nested struct {
		Message string `json:"message"`
	}
	if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &nested) == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

// preMessage takes the first <pre> block of an HTML error page up to its
// first line break.
func preMessage(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	pre := doc.Find("pre").First()
	if pre.Length() == 0 {
		return ""
	}

	var b strings.Builder
	untilBreak(pre, &b)
	return strings.TrimSpace(strings.ReplaceAll(b.String(), "\u00a0", " "))
}

func untilBreak(s *goquery.Selection, b *strings.Builder) (stop bool) {
	s.Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		switch goquery.NodeName(c) {
		case "br":
			stop = true
		case "#text":
			t := c.Text()
			if i := strings.IndexAny(t, "\r\n"); i >= 0 {
				b.WriteString(t[:i])
				stop = true
			} else {
				b.WriteString(t)
			}
		default:
			stop = untilBreak(c, b)
		}
		return !stop
	})
	return stop
}
