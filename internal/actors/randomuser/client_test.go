package randomuser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbroggi/randomusersvc/internal/core/model"
	"github.com/rbroggi/randomusersvc/internal/core/ports"
)

const samplePayload = `{
	"results": [
		{
			"gender": "female",
			"name": {"title": "Ms", "first": "Jane", "last": "Doe"},
			"login": {"uuid": "uuid-1"},
			"email": "jane@example.com",
			"nat": "US"
		}
	],
	"info": {"seed": "abc", "results": 1, "page": 1, "version": "1.4"}
}`

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(ClientArgs{})
	assert.Error(t, err)
}

func TestRandomSendsFiltersOnlyWhenSet(t *testing.T) {
	tests := []struct {
		name     string
		query    ports.RandomQuery
		expected url.Values
	}{
		{
			name:     "no filters sends no query parameters",
			query:    ports.RandomQuery{},
			expected: url.Values{},
		},
		{
			name:     "gender only",
			query:    ports.RandomQuery{Gender: "female"},
			expected: url.Values{"gender": {"female"}},
		},
		{
			name:     "nationality only",
			query:    ports.RandomQuery{Nationality: "br"},
			expected: url.Values{"nat": {"br"}},
		},
		{
			name:     "both filters",
			query:    ports.RandomQuery{Gender: "male", Nationality: "us"},
			expected: url.Values{"gender": {"male"}, "nat": {"us"}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotQuery url.Values
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(samplePayload))
			}))
			defer server.Close()

			client, err := NewClient(ClientArgs{BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.Random(context.Background(), test.query)
			require.NoError(t, err)
			assert.Equal(t, test.expected, gotQuery)
		})
	}
}

func TestRandomDecodesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer server.Close()

	client, err := NewClient(ClientArgs{BaseURL: server.URL})
	require.NoError(t, err)

	res, err := client.Random(context.Background(), ports.RandomQuery{})
	require.NoError(t, err)
	require.Len(t, res.Users, 1)

	user, ok := res.Users[0].User()
	require.True(t, ok)
	assert.Equal(t, "uuid-1", user.ID)
	assert.Equal(t, "Ms Jane Doe", user.FullName)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "US", user.Nat)

	require.NotNil(t, res.Info)
	assert.Equal(t, "abc", res.Info.Seed)
}

func TestRandomErrorStatusIsStatusError(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client, err := NewClient(ClientArgs{BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Random(context.Background(), ports.RandomQuery{})
		var statusErr *model.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, status, statusErr.Status)
		server.Close()
	}
}

func TestRandomTransportFailureIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(ClientArgs{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Random(context.Background(), ports.RandomQuery{})
	assert.ErrorIs(t, err, model.ErrUnreachable)
}

func TestRandomBadBodyIsPlainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, err := NewClient(ClientArgs{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Random(context.Background(), ports.RandomQuery{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrUnreachable)
	var statusErr *model.StatusError
	assert.False(t, errors.As(err, &statusErr))
}
