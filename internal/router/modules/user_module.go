package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
)

// UserModule serves /user. Signup and login are public; everything else needs
// a token, and update/delete are limited to the caller's own account.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Routes() []Route {
	return []Route{
		{http.MethodPost, "/login", m.Handler.Login, false},
		{http.MethodPost, "", m.Handler.Create, false},
		{http.MethodGet, "/:id", m.Handler.Get, true},
		{http.MethodGet, "", m.Handler.Search, true},
		{http.MethodPatch, "/:id", m.Handler.Update, true},
		{http.MethodDelete, "/:id", m.Handler.Delete, true},
	}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	mount(rg, "/user", m.Routes(), m.Auth)
}
