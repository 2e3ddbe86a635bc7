package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/natmag/chat-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://catalog.example.com/products", 5*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, "https://catalog.example.com/products", client.baseURL)
	assert.Equal(t, 5*time.Second, client.fetchTimeout)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient("https://catalog.example.com/products", 0)
	assert.Equal(t, defaultFetchTimeout, client.fetchTimeout)
}

func TestFetchAll_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)

		products := []domain.CatalogProduct{
			{
				ID:          101,
				Name:        "Ceai de musetel",
				Permalink:   "https://natmag.ro/p/ceai-de-musetel",
				Price:       "12.5",
				Description: "<p>Ceai calmant.</p>",
				Categories:  []string{"Ceaiuri"},
				Images:      []string{"https://natmag.ro/img/101.jpg"},
				Attributes:  domain.ProductAttributes{Brand: []string{"Natmag"}},
			},
			{ID: 102, Name: "Miere de tei", Price: "25"},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	products, err := client.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 101, products[0].ID)
	assert.Equal(t, "Ceai de musetel", products[0].Name)
	assert.Equal(t, []string{"Natmag"}, products[0].Attributes.Brand)
}

func TestFetchAll_DropsRecordsWithoutIDOrName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Valid"},{"id":0,"name":"No id"},{"id":2,"name":""}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	products, err := client.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Valid", products[0].Name)
}

func TestFetchAll_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	products, err := client.FetchAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Nil(t, products)
}

func TestFetchAll_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestFetchAll_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 50*time.Millisecond)

	start := time.Now()
	_, err := client.FetchAll(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Less(t, elapsed, 2*time.Second, "request was not cancelled by the timeout")
}

func TestFetchAll_ConnectionRefused(t *testing.T) {
	// Point at a closed port
	client := NewClient("http://127.0.0.1:1", time.Second)

	_, err := client.FetchAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
