package pocketbase

import (
	"context"
	"fmt"
)

// Delete removes a record by id. An empty id fails as a bad request before
// any request is sent; the records endpoint without an id segment would
// otherwise be hit with a DELETE it does not support.
func (col *Collection) Delete(ctx context.Context, recordID string) error {
	if col.err != nil {
		return col.err
	}

	if recordID == "" {
		return fmt.Errorf("%w: record id cannot be empty", ErrBadRequest)
	}

	resp, err := col.client.http.Delete(ctx, col.recordPath(recordID))
	if err != nil {
		return wrapTransport(err)
	}

	if resp.StatusCode/100 == 2 {
		return nil
	}

	return classify(deleteStatuses, resp)
}
