package middleware

import (
	"encoding/json"
	"net/http"
)

// problemTypes maps the statuses middleware can answer with on its own to
// the problem type URIs used by the API error handler
var problemTypes = map[int]string{
	http.StatusBadRequest:          "/errors/bad-request",
	http.StatusNotFound:            "/errors/not-found",
	http.StatusTooManyRequests:     "/errors/rate-limit",
	http.StatusInternalServerError: "/errors/internal",
	http.StatusServiceUnavailable:  "/errors/service-unavailable",
	http.StatusGatewayTimeout:      "/errors/timeout",
}

// Problem is the RFC 7807 body written when a request is rejected before it
// reaches a movie handler
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Trace    string `json:"trace_id,omitempty"`
}

// NewProblem builds a problem for status. The instance and trace id are
// taken from r when it is not nil.
func NewProblem(status int, detail string, r *http.Request) Problem {
	p := Problem{
		Type:   "/errors/unknown",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
	if t, ok := problemTypes[status]; ok {
		p.Type = t
	}
	if r != nil {
		p.Instance = r.URL.Path
		p.Trace = GetRequestID(r.Context())
	}
	return p
}

// Write sends the problem as application/problem+json
func (p Problem) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(p.Status)
	return json.NewEncoder(w).Encode(p)
}
