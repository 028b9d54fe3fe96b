package pocketbase

import "context"

// Update patches an existing record with the given JSON-serializable value.
// Fields absent from the value are left untouched.
func (col *Collection) Update(ctx context.Context, recordID string, record interface{}) (*WriteResponse, error) {
	if col.err != nil {
		return nil, col.err
	}

	resp, err := col.client.http.Patch(ctx, col.recordPath(recordID), record)
	if err != nil {
		return nil, wrapTransport(err)
	}

	return writeResult(resp)
}
