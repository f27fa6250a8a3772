package modules

import "github.com/gin-gonic/gin"

// Route is one row of a module's route table. Auth routes run behind the
// bearer-token gate.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Auth    bool
}

func mount(rg *gin.RouterGroup, prefix string, routes []Route, auth gin.HandlerFunc) {
	g := rg.Group(prefix)
	for _, rt := range routes {
		chain := make([]gin.HandlerFunc, 0, 2)
		if rt.Auth {
			chain = append(chain, auth)
		}
		chain = append(chain, rt.Handler)
		g.Handle(rt.Method, rt.Path, chain...)
	}
}
