// Package domain provides the client core: the network boundary, observer lists and the
// generic remote collection every entity type is mirrored with.
package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"feedme/internal/core/apperror"
	"feedme/internal/core/id"
)

// Requester is the network boundary: one JSON request, one response.
// Implementations return an error only when no response was received at all; HTTP error
// statuses come back as a Response and are interpreted by the core.
type Requester interface {
	Do(ctx context.Context, method, path string, body any) (*Response, error)
}

// Response is the raw outcome of a request.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(r.Body, v)
}

// Path joins resource segments into a REST path: Path("meals", 7) == "/meals/7".
func Path(segments ...any) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		switch v := s.(type) {
		case string:
			b.WriteString(strings.Trim(v, "/"))
		case id.ID:
			b.WriteString(v.String())
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// Fetch GETs path and decodes the body into out.
// Any failure (transport, status, decoding) is a RemoteRead error.
func Fetch(ctx context.Context, r Requester, path string, out any) error {
	resp, err := r.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return apperror.NewRemoteRead(path, 0).WithCause(err)
	}
	if !resp.OK() {
		return apperror.NewRemoteRead(path, resp.StatusCode)
	}
	if err := resp.Decode(out); err != nil {
		return apperror.NewRemoteRead(path, resp.StatusCode).WithCause(err)
	}
	return nil
}

// FetchEntity is Fetch for a single record; a 404 becomes a NotFound error naming the entity.
func FetchEntity(ctx context.Context, r Requester, path, entity string, entityID id.ID, out any) error {
	err := Fetch(ctx, r, path, out)
	if appErr, ok := apperror.AsAppError(err); ok && appErr.Details["status"] == http.StatusNotFound {
		return apperror.NewNotFound(entity, entityID)
	}
	return err
}

// Send issues a mutating request. When out is non-nil the response body is decoded into it.
// Any failure is a RemoteWrite error.
func Send(ctx context.Context, r Requester, method, path string, body, out any) error {
	resp, err := r.Do(ctx, method, path, body)
	if err != nil {
		return apperror.NewRemoteWrite(method, path, 0).WithCause(err)
	}
	if !resp.OK() {
		return apperror.NewRemoteWrite(method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		return apperror.NewRemoteWrite(method, path, resp.StatusCode).
			WithCause(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Create validates params, PUTs them to a collection path and decodes the created entity.
func Create[T any](ctx context.Context, r Requester, path string, params any) (T, error) {
	var created T
	if err := validate(ctx, params); err != nil {
		return created, err
	}
	err := Send(ctx, r, http.MethodPut, path, params, &created)
	return created, err
}

// Validatable is implemented by request parameters that can be checked before sending.
type Validatable interface {
	Validate(ctx context.Context) error
}

func validate(ctx context.Context, params any) error {
	if v, ok := params.(Validatable); ok {
		return v.Validate(ctx)
	}
	return nil
}
