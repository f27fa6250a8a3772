package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
)

// OrderModule serves /order. Every route requires a token.
type OrderModule struct {
	Handler *handlers.OrderHandler
	Auth    gin.HandlerFunc
}

func NewOrderModule(h *handlers.OrderHandler, auth gin.HandlerFunc) *OrderModule {
	return &OrderModule{Handler: h, Auth: auth}
}

func (m *OrderModule) Routes() []Route {
	return []Route{
		{http.MethodPost, "", m.Handler.Create, true},
		{http.MethodGet, "/:id", m.Handler.Get, true},
		{http.MethodGet, "", m.Handler.Search, true},
		{http.MethodPatch, "/:id", m.Handler.Update, true},
		{http.MethodDelete, "/:id", m.Handler.Delete, true},
	}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	mount(rg, "/order", m.Routes(), m.Auth)
}
