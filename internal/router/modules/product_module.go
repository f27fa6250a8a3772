package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
)

type ProductModule struct {
	Handler *handlers.ProductHandler
	Auth    gin.HandlerFunc
}

func NewProductModule(h *handlers.ProductHandler, auth gin.HandlerFunc) *ProductModule {
	return &ProductModule{Handler: h, Auth: auth}
}

func (m *ProductModule) Routes() []Route {
	return []Route{
		{http.MethodPost, "", m.Handler.Create, true},
		{http.MethodGet, "/categories/:user_id", m.Handler.Categories, false},
		{http.MethodGet, "/:id", m.Handler.Get, false},
		{http.MethodGet, "", m.Handler.Search, false},
		{http.MethodPatch, "/:id", m.Handler.Update, true},
		{http.MethodDelete, "/:id", m.Handler.Delete, true},
	}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	mount(rg, "/product", m.Routes(), m.Auth)
}
