// problem_http.go - writing problem documents to net/http responses.
package masterror

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Headers copies the transport hints onto h: Retry-After and
// WWW-Authenticate, when present.
func (p Problem) Headers(h http.Header) {
	if p.RetryAfter != nil {
		h.Set("Retry-After", strconv.FormatUint(*p.RetryAfter, 10))
	}
	if p.WWWAuthenticate != "" {
		h.Set("WWW-Authenticate", p.WWWAuthenticate)
	}
}

// WriteHTTP writes p as an application/problem+json response.
func (p Problem) WriteHTTP(w http.ResponseWriter) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	h := w.Header()
	h.Set("Content-Type", ProblemContentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	p.Headers(h)
	w.WriteHeader(p.Status)
	_, err = w.Write(body)
	return err
}

// WriteProblem maps err and writes it to w. Errors that are not AppError
// are converted with From first.
func WriteProblem(w http.ResponseWriter, err error) error {
	return NewProblem(From(err)).WriteHTTP(w)
}
