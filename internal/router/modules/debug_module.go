package modules

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DebugModule serves the health text at / and, when enabled, expvar at /debug/vars.
type DebugModule struct {
	AppName string
	Metrics bool
}

func NewDebugModule(appName string, metrics bool) *DebugModule {
	return &DebugModule{AppName: appName, Metrics: metrics}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, m.AppName+" is running")
	})
	if m.Metrics {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}
