package pocketbase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fromhorizons/pocketbase-go/pkg/pocketbase"
)

func TestGetOne(t *testing.T) {
	t.Parallel()
	t.Run("success with expand", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/collections/articles/records/art1", request.URL.Path)
			assert.Equal(t, "author", request.URL.Query().Get("expand"))

			_ = json.NewEncoder(writer).Encode(article{ID: "art1", Title: "hello", Content: "world"})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		record, err := pocketbase.GetOne[article](client.Collection("articles"), "art1").
			Expand("author").
			Call(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "art1", record.ID)
		assert.Equal(t, "hello", record.Title)
	})

	t.Run("status mapping", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status  int
			wantErr error
		}{
			{status: http.StatusUnauthorized, wantErr: pocketbase.ErrUnauthorized},
			{status: http.StatusForbidden, wantErr: pocketbase.ErrForbidden},
			{status: http.StatusNotFound, wantErr: pocketbase.ErrNotFound},
			{status: http.StatusTooManyRequests, wantErr: pocketbase.ErrTooManyRequests},
		}

		for _, testCase := range tests {
			testCase := testCase
			t.Run(strconv.Itoa(testCase.status), func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
					writer.WriteHeader(testCase.status)
				}))
				defer server.Close()

				client, err := pocketbase.New(server.URL)
				require.NoError(t, err)

				_, err = pocketbase.GetOne[article](client.Collection("articles"), "art1").Call(context.Background())
				assert.ErrorIs(t, err, testCase.wantErr)
			})
		}
	})

	t.Run("unexpected status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusTeapot)
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = pocketbase.GetOne[article](client.Collection("articles"), "art1").Call(context.Background())
		require.Error(t, err)

		unexpected := &pocketbase.UnexpectedStatusError{}
		require.ErrorAs(t, err, &unexpected)
		assert.Equal(t, http.StatusTeapot, unexpected.Status)
	})

	t.Run("malformed body is a parse error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte("not json"))
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = pocketbase.GetOne[article](client.Collection("articles"), "art1").Call(context.Background())
		require.Error(t, err)

		parseErr := &pocketbase.ParseError{}
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestGetList(t *testing.T) {
	t.Parallel()
	t.Run("query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			query := request.URL.Query()
			assert.Equal(t, "2", query.Get("page"))
			assert.Equal(t, "20", query.Get("perPage"))
			assert.Equal(t, "-created", query.Get("sort"))
			assert.Equal(t, "published = true", query.Get("filter"))
			assert.Equal(t, "author", query.Get("expand"))

			_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{
				Page:       2,
				PerPage:    20,
				TotalItems: 45,
				TotalPages: 3,
				Items:      []article{{ID: "a"}, {ID: "b"}},
			})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		list, err := pocketbase.GetList[article](client.Collection("articles")).
			Page(2).
			PerPage(20).
			Sort("-created").
			Filter("published = true").
			Expand("author").
			Call(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 45, list.TotalItems)
		assert.Len(t, list.Items, 2)
	})

	t.Run("unset parameters are omitted", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.URL.RawQuery)
			_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{Page: 1, PerPage: 30})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = pocketbase.GetList[article](client.Collection("articles")).Call(context.Background())
		require.NoError(t, err)
	})

	t.Run("perPage is capped at 500", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "500", request.URL.Query().Get("perPage"))
			_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = pocketbase.GetList[article](client.Collection("articles")).
			PerPage(9000).
			Call(context.Background())
		require.NoError(t, err)
	})

	t.Run("skipTotal reports totals as -1", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "true", request.URL.Query().Get("skipTotal"))

			_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{
				Page:       1,
				PerPage:    30,
				TotalItems: -1,
				TotalPages: -1,
				Items:      []article{{ID: "a"}},
			})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		list, err := pocketbase.GetList[article](client.Collection("articles")).
			SkipTotal().
			Call(context.Background())
		require.NoError(t, err)
		assert.Equal(t, -1, list.TotalItems)
		assert.Equal(t, -1, list.TotalPages)
	})
}

// fullListServer serves totalItems records in pages, recording every request.
func fullListServer(t *testing.T, totalItems int) (*httptest.Server, *int) {
	t.Helper()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		query := request.URL.Query()
		assert.Equal(t, "true", query.Get("skipTotal"))

		page, err := strconv.Atoi(query.Get("page"))
		require.NoError(t, err)
		perPage, err := strconv.Atoi(query.Get("perPage"))
		require.NoError(t, err)

		start := (page - 1) * perPage
		items := []article{}

		for i := start; i < totalItems && i < start+perPage; i++ {
			items = append(items, article{ID: fmt.Sprintf("rec%d", i)})
		}

		_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{
			Page:       page,
			PerPage:    perPage,
			TotalItems: -1,
			TotalPages: -1,
			Items:      items,
		})
	}))

	return server, &requests
}

func TestGetFullList(t *testing.T) {
	t.Parallel()
	t.Run("accumulates pages in order", func(t *testing.T) {
		t.Parallel()

		server, requests := fullListServer(t, 5)
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		records, err := pocketbase.GetFullList[article](client.Collection("articles")).
			BatchSize(2).
			Call(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, "rec0", records[0].ID)
		assert.Equal(t, "rec4", records[4].ID)

		// 2 + 2 + 1: the short last page terminates the loop.
		assert.Equal(t, 3, *requests)
	})

	t.Run("exact multiple of batch size costs one extra request", func(t *testing.T) {
		t.Parallel()

		server, requests := fullListServer(t, 4)
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		records, err := pocketbase.GetFullList[article](client.Collection("articles")).
			BatchSize(2).
			Call(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 4)

		// 2 + 2 + 0: the trailing empty page is what proves exhaustion.
		assert.Equal(t, 3, *requests)
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()

		server, requests := fullListServer(t, 0)
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		records, err := pocketbase.GetFullList[article](client.Collection("articles")).
			BatchSize(2).
			Call(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 1, *requests)
	})

	t.Run("default batch size is the server maximum", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "500", request.URL.Query().Get("perPage"))
			_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = pocketbase.GetFullList[article](client.Collection("articles")).Call(context.Background())
		require.NoError(t, err)
	})

	t.Run("page error aborts the walk", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = pocketbase.GetFullList[article](client.Collection("articles")).Call(context.Background())
		assert.ErrorIs(t, err, pocketbase.ErrForbidden)
	})
}

func TestGetFirstListItem(t *testing.T) {
	t.Parallel()
	t.Run("forces a single-row page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			query := request.URL.Query()
			assert.Equal(t, "1", query.Get("page"))
			assert.Equal(t, "1", query.Get("perPage"))
			assert.Equal(t, "true", query.Get("skipTotal"))
			assert.Equal(t, `title = "hello"`, query.Get("filter"))

			_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{
				Page:    1,
				PerPage: 1,
				Items:   []article{{ID: "art1", Title: "hello"}},
			})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		record, err := pocketbase.GetFirstListItem[article](client.Collection("articles"), `title = "hello"`).
			Call(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "art1", record.ID)
	})

	t.Run("no match is a parse error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(pocketbase.RecordList[article]{Page: 1, PerPage: 1})
		}))
		defer server.Close()

		client, err := pocketbase.New(server.URL)
		require.NoError(t, err)

		_, err = pocketbase.GetFirstListItem[article](client.Collection("articles"), `title = "missing"`).
			Call(context.Background())
		require.Error(t, err)

		parseErr := &pocketbase.ParseError{}
		assert.ErrorAs(t, err, &parseErr)
	})
}
