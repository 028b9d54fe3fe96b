package pocketbase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fromhorizons/pocketbase-go/pkg/pocketbase"
)

func TestCollection_Impersonate(t *testing.T) {
	t.Parallel()
	t.Run("returns an independent authenticated client", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/api/collections/_superusers/auth-with-password", func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(pocketbase.AuthStore{Token: "superuser-token"})
		})
		mux.HandleFunc("/api/collections/users/impersonate/usr1", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "Bearer superuser-token", request.Header.Get("Authorization"))

			_ = json.NewEncoder(writer).Encode(pocketbase.AuthStore{
				Token:  "impersonated-token",
				Record: pocketbase.AuthRecord{ID: "usr1"},
			})
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = client.Collection("_superusers").AuthWithPassword(context.Background(), "root@example.com", "secret")
		require.NoError(t, err)

		impersonated, err := client.Collection("users").Impersonate("usr1").Call(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "impersonated-token", impersonated.Token())
		assert.Equal(t, "usr1", impersonated.AuthStore().Record.ID)
		assert.Equal(t, client.BaseURL(), impersonated.BaseURL())

		// The superuser client keeps its own session.
		assert.Equal(t, "superuser-token", client.Token())
	})

	t.Run("duration is sent as a form field in seconds", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			require.NoError(t, request.ParseMultipartForm(1<<20))
			assert.Equal(t, "3600", request.FormValue("duration"))

			_ = json.NewEncoder(writer).Encode(pocketbase.AuthStore{Token: "short-lived-token"})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		impersonated, err := client.Collection("users").Impersonate("usr1").
			Duration(time.Hour).
			Call(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "short-lived-token", impersonated.Token())
	})

	t.Run("status mapping", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			status  int
			wantErr error
		}{
			{name: "bad request", status: http.StatusBadRequest, wantErr: pocketbase.ErrBadRequest},
			{name: "unauthorized", status: http.StatusUnauthorized, wantErr: pocketbase.ErrUnauthorized},
			{name: "forbidden", status: http.StatusForbidden, wantErr: pocketbase.ErrForbidden},
			{name: "not found", status: http.StatusNotFound, wantErr: pocketbase.ErrNotFound},
		}

		for _, testCase := range tests {
			testCase := testCase
			t.Run(testCase.name, func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
					writer.WriteHeader(testCase.status)
				}))
				defer server.Close()

				client, err := pocketbase.New(server.URL)
				require.NoError(t, err)

				_, err = client.Collection("users").Impersonate("usr1").Call(context.Background())
				assert.ErrorIs(t, err, testCase.wantErr)
			})
		}
	})
}
