package pocketbase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	pbhttp "github.com/fromhorizons/pocketbase-go/internal/http"
)

// ImpersonateBuilder obtains a session for another auth record. Requires
// superuser authorization on the calling client.
type ImpersonateBuilder struct {
	col      *Collection
	userID   string
	duration time.Duration
}

// Impersonate starts an impersonation request for the given auth record id.
func (col *Collection) Impersonate(userID string) *ImpersonateBuilder {
	return &ImpersonateBuilder{col: col, userID: userID}
}

// Duration sets an optional token lifetime. Zero leaves the server default;
// the value is sent with second granularity.
func (b *ImpersonateBuilder) Duration(d time.Duration) *ImpersonateBuilder {
	b.duration = d

	return b
}

// Call executes the request and returns a new independent client that is
// authenticated as the impersonated record. The calling client's session is
// left untouched.
func (b *ImpersonateBuilder) Call(ctx context.Context) (*Client, error) {
	if b.col.err != nil {
		return nil, b.col.err
	}

	path := b.col.collectionPath("impersonate/" + b.userID)

	resp, err := b.send(ctx, path)
	if err != nil {
		return nil, wrapTransport(err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, classify(impersonateStatuses, resp)
	}

	var store AuthStore
	if err := json.Unmarshal(resp.Body, &store); err != nil {
		return nil, &ParseError{Err: err}
	}

	impersonated, err := New(b.col.client.BaseURL())
	if err != nil {
		return nil, err
	}

	impersonated.updateAuthStore(&store)

	return impersonated, nil
}

func (b *ImpersonateBuilder) send(ctx context.Context, path string) (*pbhttp.Response, error) {
	if b.duration <= 0 {
		return b.col.client.http.Post(ctx, path, nil)
	}

	form := NewForm().Text("duration", strconv.FormatInt(int64(b.duration/time.Second), 10))

	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	return b.col.client.http.PostMultipart(ctx, path, contentType, body)
}
