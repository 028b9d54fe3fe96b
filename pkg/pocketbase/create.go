package pocketbase

import (
	"context"
	"encoding/json"

	pbhttp "github.com/fromhorizons/pocketbase-go/internal/http"
)

// Create inserts a new record from a JSON-serializable value and returns the
// created record's system fields.
//
// A 400 response is returned as a *BadRequestError carrying the per-field
// validation failures from the response body.
func (col *Collection) Create(ctx context.Context, record interface{}) (*WriteResponse, error) {
	if col.err != nil {
		return nil, col.err
	}

	resp, err := col.client.http.Post(ctx, col.recordsPath(), record)
	if err != nil {
		return nil, wrapTransport(err)
	}

	return writeResult(resp)
}

// CreateMultipart inserts a new record from a multipart form, allowing file
// fields alongside text fields.
func (col *Collection) CreateMultipart(ctx context.Context, form *Form) (*WriteResponse, error) {
	if col.err != nil {
		return nil, col.err
	}

	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	resp, err := col.client.http.PostMultipart(ctx, col.recordsPath(), contentType, body)
	if err != nil {
		return nil, wrapTransport(err)
	}

	return writeResult(resp)
}

// writeResult maps a create/update response onto a WriteResponse or a typed
// error. Both operations share the same response contract.
func writeResult(resp *pbhttp.Response) (*WriteResponse, error) {
	switch {
	case resp.StatusCode/100 == 2:
		var result WriteResponse
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, &ParseError{Err: err}
		}

		return &result, nil
	case resp.StatusCode == 400:
		return nil, badRequestError(resp.Body)
	default:
		return nil, classify(writeStatuses, resp)
	}
}
