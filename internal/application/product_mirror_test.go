package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/infrastructure/memory"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

func TestProductService_MirrorsToSearchIndex(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)

	svc := NewProductService(memory.NewProductRepository(), es, "products", quietLogger(), nil)
	owner := primitive.NewObjectID()
	ctx := context.Background()

	p, err := svc.Create(ctx, owner, laptop(owner))
	require.NoError(t, err)
	_, err = svc.Delete(ctx, owner, p.ID)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"PUT /products/_doc/" + p.ID.Hex(),
		"DELETE /products/_doc/" + p.ID.Hex(),
	}, calls)
}
