package pocketbase

import (
	"context"
	"encoding/json"

	pbhttp "github.com/fromhorizons/pocketbase-go/internal/http"
)

// credentials is the auth-with-password request body.
type credentials struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// emailRequest is the request-verification request body.
type emailRequest struct {
	Email string `json:"email"`
}

// AuthWithPassword authenticates against the collection with an identity
// (usually an email) and password. On success the returned session is
// installed on the client, so subsequent requests carry its token.
//
// Rejections come back typed: ErrInvalidCredentials for a plain mismatch,
// ErrIdentityMustBeEmail when the collection requires an email identity, and
// *EmptyFieldError when a credential field was blank.
func (col *Collection) AuthWithPassword(ctx context.Context, identity, password string) (*AuthStore, error) {
	if col.err != nil {
		return nil, col.err
	}

	resp, err := col.client.http.Post(ctx, col.collectionPath("auth-with-password"),
		credentials{Identity: identity, Password: password})
	if err != nil {
		return nil, wrapTransport(err)
	}

	switch {
	case resp.StatusCode/100 == 2:
		var store AuthStore
		if err := json.Unmarshal(resp.Body, &store); err != nil {
			return nil, &ParseError{Err: err}
		}

		col.client.updateAuthStore(&store)

		return &store, nil
	case resp.StatusCode == 400:
		return nil, authRejection(resp.Body)
	default:
		return nil, classify(authStatuses, resp)
	}
}

// authRejection inspects a 400 auth-with-password body and picks the matching
// credential error.
func authRejection(body []byte) error {
	envelope := parseErrorResponse(body)

	if len(envelope.Data) == 0 {
		return ErrInvalidCredentials
	}

	if identity, ok := envelope.Data["identity"]; ok {
		switch identity.Code {
		case "validation_is_email":
			return ErrIdentityMustBeEmail
		case "validation_required":
			_, passwordBlank := envelope.Data["password"]

			return &EmptyFieldError{Identity: true, Password: passwordBlank}
		}

		return ErrInvalidCredentials
	}

	if _, ok := envelope.Data["password"]; ok {
		return &EmptyFieldError{Password: true}
	}

	return ErrInvalidCredentials
}

// AuthRefresh exchanges the current session token for a fresh one and
// installs the result as the new session.
func (col *Collection) AuthRefresh(ctx context.Context) (*AuthStore, error) {
	if col.err != nil {
		return nil, col.err
	}

	resp, err := col.client.http.Post(ctx, col.collectionPath("auth-refresh"), nil)
	if err != nil {
		return nil, wrapTransport(err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, classify(authStatuses, resp)
	}

	var store AuthStore
	if err := json.Unmarshal(resp.Body, &store); err != nil {
		return nil, &ParseError{Err: err}
	}

	col.client.updateAuthStore(&store)

	return &store, nil
}

// AuthRefreshForUser refreshes an arbitrary token without touching the
// client's own session. The explicit token is sent in place of the session
// token and the refreshed store is only returned, never installed.
func (col *Collection) AuthRefreshForUser(ctx context.Context, token string) (*AuthStore, error) {
	if col.err != nil {
		return nil, col.err
	}

	resp, err := col.client.http.Do(ctx, &pbhttp.Request{
		Method:  "POST",
		Path:    col.collectionPath("auth-refresh"),
		Headers: map[string]string{"Authorization": "Bearer " + token},
	})
	if err != nil {
		return nil, wrapTransport(err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, classify(authStatuses, resp)
	}

	var store AuthStore
	if err := json.Unmarshal(resp.Body, &store); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &store, nil
}

// RequestVerification asks the server to send a verification email. The
// server answers 204 whether or not the address belongs to a record, so a nil
// error only means the request was accepted.
func (col *Collection) RequestVerification(ctx context.Context, email string) error {
	if col.err != nil {
		return col.err
	}

	resp, err := col.client.http.Post(ctx, col.collectionPath("request-verification"),
		emailRequest{Email: email})
	if err != nil {
		return wrapTransport(err)
	}

	if resp.StatusCode/100 == 2 {
		return nil
	}

	return classify(verificationStatuses, resp)
}
