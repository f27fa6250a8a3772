package router

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/container"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/internal/infrastructure/memory"
	"github.com/oksasatya/storefront-api/internal/infrastructure/mongodb"
	handlers "github.com/oksasatya/storefront-api/internal/interface/http"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/internal/router/modules"
	"github.com/oksasatya/storefront-api/pkg/helpers"
)

// Deps is everything the resource modules need. Optional clients may be nil.
type Deps struct {
	Users    repo.UserRepository
	Products repo.ProductRepository
	Orders   repo.OrderRepository

	JWT     *helpers.JWTManager
	Redis   *redis.Client
	ES      *elasticsearch.Client
	ESIndex string
	Events  application.EventPublisher
	Logger  *logrus.Logger

	AppName      string
	DebugMetrics bool
}

// Mount builds services, handlers and modules from deps and adds them to r.
func Mount(r *Registry, d Deps) {
	auth := middleware.Auth(d.Redis, d.JWT, d.Logger)

	users := application.NewUserService(d.Users, d.JWT, d.Redis, d.Logger, d.Events)
	products := application.NewProductService(d.Products, d.ES, d.ESIndex, d.Logger, d.Events)
	orders := application.NewOrderService(d.Orders, d.Products, d.Logger, d.Events)

	r.Add(modules.NewDebugModule(d.AppName, d.DebugMetrics))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, d.Logger), auth))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(products, d.Logger), auth))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orders, d.Logger), auth))
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	d := Deps{
		JWT:          container.GetJWT(),
		Redis:        container.GetRedis(),
		ES:           container.GetES(),
		ESIndex:      cfg.ESProductsIndex,
		Logger:       container.GetLogger(),
		AppName:      cfg.AppName,
		DebugMetrics: cfg.DebugMetricsEnabled,
	}
	// a nil *RabbitPublisher must not become a non-nil interface
	if pub := container.GetRabbitPub(); pub != nil {
		d.Events = pub
	}
	if db := container.GetMongo(); db != nil {
		d.Users = mongodb.NewUserRepository(db)
		d.Products = mongodb.NewProductRepository(db)
		d.Orders = mongodb.NewOrderRepository(db)
	} else {
		d.Users = memory.NewUserRepository()
		d.Products = memory.NewProductRepository()
		d.Orders = memory.NewOrderRepository()
	}
	return d
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	Mount(r, buildDeps())
}
