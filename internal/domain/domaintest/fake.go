// Package domaintest provides a scripted Requester for unit tests of the client core.
package domaintest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"feedme/internal/domain"
)

// Call is one recorded request.
type Call struct {
	Method string
	Path   string
	Body   json.RawMessage
}

// Reply is one scripted response. A non-nil Err simulates a transport failure.
// Before, when set, runs before the reply is returned, with no lock held.
type Reply struct {
	Status int
	Body   any
	Err    error
	Before func()
}

// Requester answers requests from per-route reply queues keyed by "METHOD path".
// The last reply of a queue is repeated once the queue is drained.
// Unscripted routes answer 404.
type Requester struct {
	mu     sync.Mutex
	routes map[string][]Reply
	calls  []Call
}

var _ domain.Requester = (*Requester)(nil)

// New creates an empty Requester.
func New() *Requester {
	return &Requester{routes: make(map[string][]Reply)}
}

// On appends replies for method and path.
func (r *Requester) On(method, path string, replies ...Reply) *Requester {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := method + " " + path
	r.routes[key] = append(r.routes[key], replies...)
	return r
}

// OK scripts a 200 reply with a JSON body.
func (r *Requester) OK(method, path string, body any) *Requester {
	return r.On(method, path, Reply{Status: http.StatusOK, Body: body})
}

// Fail scripts a non-2xx reply.
func (r *Requester) Fail(method, path string, status int) *Requester {
	return r.On(method, path, Reply{Status: status, Body: map[string]string{"message": http.StatusText(status)}})
}

// Do implements domain.Requester.
func (r *Requester) Do(_ context.Context, method, path string, body any) (*domain.Response, error) {
	var raw json.RawMessage
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		raw = data
	}

	r.mu.Lock()
	r.calls = append(r.calls, Call{Method: method, Path: path, Body: raw})
	key := method + " " + path
	queue := r.routes[key]
	var reply Reply
	switch {
	case len(queue) == 0:
		reply = Reply{Status: http.StatusNotFound}
	case len(queue) == 1:
		reply = queue[0]
	default:
		reply = queue[0]
		r.routes[key] = queue[1:]
	}
	r.mu.Unlock()

	if reply.Before != nil {
		reply.Before()
	}
	if reply.Err != nil {
		return nil, reply.Err
	}

	resp := &domain.Response{StatusCode: reply.Status}
	if reply.Body != nil {
		switch b := reply.Body.(type) {
		case string:
			resp.Body = []byte(b)
		case []byte:
			resp.Body = b
		default:
			data, err := json.Marshal(b)
			if err != nil {
				return nil, fmt.Errorf("marshal reply body: %w", err)
			}
			resp.Body = data
		}
	}
	return resp, nil
}

// Calls returns every recorded request in order.
func (r *Requester) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsTo returns the recorded requests for one route.
func (r *Requester) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// LastBody decodes the body of the most recent request to the route into v.
func (r *Requester) LastBody(method, path string, v any) error {
	calls := r.CallsTo(method, path)
	if len(calls) == 0 {
		return fmt.Errorf("no %s %s request recorded", method, path)
	}
	return json.Unmarshal(calls[len(calls)-1].Body, v)
}
