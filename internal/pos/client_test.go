package pos_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kassa/internal/config"
	"kassa/internal/pos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(t *testing.T, baseURL string) *pos.Client {
	t.Helper()
	cfg := config.Config{BaseURL: baseURL, Timeout: 5 * time.Second}
	return pos.NewClient(cfg, zap.NewNop())
}

func TestLoginReturnsServerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "1234", body["pin"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	token, err := client.Login(context.Background(), "1234")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestFetchInitialSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":"p1","name":"Olma","price":1000,"stock":5}],"settings":{"name":"Do'kon","currency":"so'm"}}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	client.SetToken("abc")

	data, err := client.FetchInitial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	require.Len(t, data.Products, 1)
	assert.Equal(t, "Olma", data.Products[0].Name)
	require.NotNil(t, data.Settings)
	assert.Equal(t, "so'm", data.Settings.Currency)
}

func TestFetchInitialWithoutTokenSkipsNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	_, err := client.FetchInitial(context.Background())
	require.ErrorIs(t, err, pos.ErrMissingToken)

	_, err = client.Me(context.Background())
	require.ErrorIs(t, err, pos.ErrMissingToken)

	assert.Zero(t, calls)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, pos.ErrUnauthorized)
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, pos.ErrUnauthorized)
			},
		},
		{
			name:   "validation",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var validationErr *pos.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, http.StatusBadRequest, validationErr.StatusCode)
			},
		},
		{
			name:   "transport",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var apiErr *pos.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"nope"}`, tt.status)
			}))
			defer srv.Close()

			client := newClient(t, srv.URL)
			client.SetToken("abc")
			_, err := client.Me(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGenericEndpointsUseCollectionPaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x1","name":"dona"}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	client.SetToken("abc")
	ctx := context.Background()

	var unit pos.Unit
	require.NoError(t, client.Create(ctx, "units", pos.Unit{Name: "dona"}, &unit))
	assert.Equal(t, "x1", unit.ID)
	require.NoError(t, client.Update(ctx, "products", "p1", pos.Product{Name: "Olma"}, &pos.Product{}))
	require.NoError(t, client.Delete(ctx, "units", "x1"))

	require.Equal(t, []call{
		{http.MethodPost, "/units/"},
		{http.MethodPut, "/products/p1/"},
		{http.MethodDelete, "/units/x1/"},
	}, calls)
}

func TestClearTokenDropsCredential(t *testing.T) {
	client := newClient(t, "http://localhost:0")
	client.SetToken("abc")
	require.True(t, client.HasToken())
	client.ClearToken()
	require.False(t, client.HasToken())

	_, err := client.FetchInitial(context.Background())
	assert.ErrorIs(t, err, pos.ErrMissingToken)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	client := newClient(t, "http://127.0.0.1:1")
	client.SetToken("abc")
	_, err := client.FetchInitial(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, pos.ErrUnauthorized))
}
