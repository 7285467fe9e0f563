package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// emptyFares is served for date pairs without a registered body.
const emptyFares = `{"fares": [], "nextPage": null, "size": 0}`

// FareServer is a fake fare finder serving /roundTripFares.
// Bodies and status codes are registered per outbound/inbound date pair.
type FareServer struct {
	*httptest.Server

	mu       sync.Mutex
	bodies   map[string][]byte
	statuses map[string]int
	requests []string
}

// NewFareServer starts a fake fare finder that is closed when the test ends.
func NewFareServer(t *testing.T) *FareServer {
	t.Helper()

	fs := &FareServer{
		bodies:   make(map[string][]byte),
		statuses: make(map[string]int),
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

// WithBody serves body for the outbound/inbound pair (YYYY-MM-DD dates).
func (fs *FareServer) WithBody(outbound, inbound string, body []byte) *FareServer {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.bodies[Pair(outbound, inbound)] = body
	return fs
}

// WithStatus answers the outbound/inbound pair with an empty response of the given status.
func (fs *FareServer) WithStatus(outbound, inbound string, status int) *FareServer {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.statuses[Pair(outbound, inbound)] = status
	return fs
}

// Requests returns the date pairs requested so far, in arrival order.
func (fs *FareServer) Requests() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]string, len(fs.requests))
	copy(out, fs.requests)
	return out
}

// RequestCount returns the number of requests received.
func (fs *FareServer) RequestCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.requests)
}

// Pair formats the key of a date pair.
func Pair(outbound, inbound string) string {
	return outbound + "|" + inbound
}

func (fs *FareServer) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/roundTripFares" {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	key := Pair(q.Get("outboundDepartureDateFrom"), q.Get("inboundDepartureDateFrom"))

	fs.mu.Lock()
	fs.requests = append(fs.requests, key)
	status, hasStatus := fs.statuses[key]
	body, hasBody := fs.bodies[key]
	fs.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !hasBody {
		body = []byte(emptyFares)
	}
	_, _ = w.Write(body)
}
