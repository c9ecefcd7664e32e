// Package transport supplies the fetch collaborator link resolution
// delegates to. It is the only place in the module that performs I/O.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/reoring/wirefield"
)

// HTTP fetches linked resources with a GET request and decodes the JSON
// body into an instance of the requested type. The zero value uses
// http.DefaultClient. Retry policy, if any, belongs in the supplied
// Client's transport; Fetch itself never retries.
type HTTP struct {
	Client *http.Client
}

var _ wirefield.Fetcher = (*HTTP)(nil)

// Fetch retrieves the resource of type t at location and records the
// location on the resulting instance, so its own links resolve relative
// to it.
func (h *HTTP) Fetch(ctx context.Context, t *wirefield.Type, location string) (*wirefield.Object, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeFetchFailed,
			Message: fmt.Sprintf("building request for %s", location),
			Cause:   err,
		}}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeFetchFailed,
			Message: fmt.Sprintf("fetching %s", location),
			Cause:   err,
		}}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeFetchFailed,
			Message: fmt.Sprintf("fetching %s: unexpected status %s", location, resp.Status),
		}}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeFetchFailed,
			Message: fmt.Sprintf("reading %s", location),
			Cause:   err,
		}}
	}
	obj, err := wirefield.FromJSON(ctx, t, body)
	if err != nil {
		return nil, err
	}
	obj.SetLocation(location)
	return obj, nil
}
