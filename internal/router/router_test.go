package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain/policy"
	"github.com/oksasatya/storefront-api/internal/infrastructure/memory"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type testServer struct {
	engine   *gin.Engine
	products *memory.ProductRepository
}

func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	products := memory.NewProductRepository()
	e := gin.New()
	e.Use(middleware.RequestIDMiddleware())
	reg := NewRegistry(e)
	Mount(reg, Deps{
		Users:    memory.NewUserRepository(),
		Products: products,
		Orders:   memory.NewOrderRepository(),
		JWT:      helpers.NewJWTManager(secret, time.Hour),
		Logger:   logger,
		AppName:  "storefront-api",
	})
	reg.RegisterAll()
	return &testServer{engine: e, products: products}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// signup creates an account and returns its id and a token.
func (s *testServer) signup(t *testing.T, email string) (string, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/user", map[string]any{"name": "Ada", "email": email, "password": "pw"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))

	w = s.do(t, http.MethodPost, "/user/login", map[string]any{"email": email, "password": "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	return u["_id"].(string), tok.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "secret")
	w := s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestUserSignup(t *testing.T) {
	s := newTestServer(t, "secret")
	w := s.do(t, http.MethodPost, "/user", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "pw", "active": false,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	u := decode[map[string]any](t, w)
	assert.Equal(t, true, u["active"])
	assert.Equal(t, "ada@example.com", u["email"])
	assert.NotContains(t, u, "password")
}

func TestUserLogin(t *testing.T) {
	s := newTestServer(t, "secret")
	s.signup(t, "ada@example.com")

	w := s.do(t, http.MethodPost, "/user/login", map[string]any{"email": "ada@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = s.do(t, http.MethodPost, "/user/login", map[string]any{"email": "ada@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserLogin_MissingSecret(t *testing.T) {
	s := newTestServer(t, "")
	w := s.do(t, http.MethodPost, "/user", map[string]any{"name": "Ada", "email": "ada@example.com", "password": "pw"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/user/login", map[string]any{"email": "ada@example.com", "password": "pw"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode[map[string]any](t, w)
	assert.Equal(t, false, env["success"])
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t, "secret")
	id, token := s.signup(t, "ada@example.com")
	otherID, otherToken := s.signup(t, "bob@example.com")

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/user/"+id, nil, "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/user/"+otherID, nil, token).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/user/xyz", nil, token).Code)

	w := s.do(t, http.MethodPatch, "/user/"+id, map[string]any{"name": "Mallory"}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, policy.ReasonUpdateUser, decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodPatch, "/user/"+id, map[string]any{"name": "Ada L."}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada L.", decode[map[string]any](t, w)["name"])

	w = s.do(t, http.MethodGet, "/user?email=bob@example.com", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/user/"+id, nil, token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/user/"+id, nil, token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/user/"+id, nil, otherToken).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/user?email=ada@example.com", nil, otherToken).Code)
}

func TestProductCategorySearch(t *testing.T) {
	s := newTestServer(t, "secret")
	owner, token := s.signup(t, "ada@example.com")

	w := s.do(t, http.MethodPost, "/product", map[string]any{
		"name": "Laptop", "user_id": owner, "description": "14 inch", "price": 999, "category": "Electronics", "rating": 4,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/product?category=Electronics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[[]map[string]any](t, w)
	require.Len(t, res, 1)
	keys := make([]string, 0, len(res[0]))
	for k := range res[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"_id", "name", "description", "price", "category", "rating"}, keys)

	w = s.do(t, http.MethodGet, "/product?category=Books", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/product/categories/"+owner, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Electronics"}, decode[[]string](t, w))

	w = s.do(t, http.MethodGet, "/product/categories/"+primitive.NewObjectID().Hex(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestProductOwnership(t *testing.T) {
	s := newTestServer(t, "secret")
	owner, token := s.signup(t, "ada@example.com")
	_, otherToken := s.signup(t, "bob@example.com")

	w := s.do(t, http.MethodPost, "/product", map[string]any{
		"name": "Laptop", "user_id": owner, "description": "d", "price": 10, "category": "Electronics",
	}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, policy.ReasonBodyOwnerMismatch, decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodPost, "/product", map[string]any{
		"name": "Laptop", "description": "d", "price": 10, "category": "Electronics",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]any](t, w)["_id"].(string)
	before := s.products.Calls()

	w = s.do(t, http.MethodPatch, "/product/"+id, map[string]any{"price": 1}, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, policy.ReasonUpdateProduct, decode[map[string]string](t, w)["message"])
	w = s.do(t, http.MethodDelete, "/product/"+id, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, before, s.products.Calls())

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodDelete, "/product/"+id, nil, "").Code)

	w = s.do(t, http.MethodDelete, "/product/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]any](t, w)["active"])
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/product/"+id, nil, token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/product/"+id, nil, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/product/not-an-id", nil, "").Code)
}

func TestProductPatchRejectsBadInput(t *testing.T) {
	s := newTestServer(t, "secret")
	_, token := s.signup(t, "ada@example.com")

	w := s.do(t, http.MethodPost, "/product", map[string]any{
		"name": "Laptop", "description": "d", "price": 10, "category": "Electronics",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[map[string]any](t, w)["_id"].(string)

	w = s.do(t, http.MethodPatch, "/product/"+id, map[string]any{"price": "free"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/product/"+id, map[string]any{"rating": 7}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[string](t, w), "rating")

	w = s.do(t, http.MethodGet, "/product/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, decode[map[string]any](t, w)["rating"])
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t, "secret")
	seller, sellerToken := s.signup(t, "ada@example.com")
	buyer, token := s.signup(t, "bob@example.com")

	w := s.do(t, http.MethodPost, "/product", map[string]any{
		"name": "Laptop", "user_id": seller, "description": "d", "price": 10, "category": "Electronics",
	}, sellerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	product := decode[map[string]any](t, w)["_id"].(string)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/order", map[string]any{"product": product, "quantity": 1}, "").Code)

	w = s.do(t, http.MethodPost, "/order", map[string]any{"product": product, "quantity": 2}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[map[string]any](t, w)
	assert.Equal(t, "created", order["status"])
	assert.Equal(t, buyer, order["user"])
	id := order["_id"].(string)

	w = s.do(t, http.MethodGet, "/order/"+id, nil, sellerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, policy.ReasonViewOrder, decode[map[string]string](t, w)["message"])

	today := time.Now().UTC().Format("2006-01-02")
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	w = s.do(t, http.MethodGet, "/order?user_id="+buyer+"&starDate="+today+"&endDate="+tomorrow, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
	w = s.do(t, http.MethodGet, "/order?user_id="+seller, nil, sellerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
	w = s.do(t, http.MethodGet, "/order?startDate=2020-01-01&endDate=2020-02-01", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, "/order?startDate=yesterday&endDate=today", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/order/"+id, map[string]any{"status": "completed"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode[map[string]any](t, w)["status"])

	w = s.do(t, http.MethodPatch, "/order/"+id, map[string]any{"quantity": 5}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/order/"+id, nil, sellerToken).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/order/"+id, nil, token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/order/"+id, nil, token).Code)
}
