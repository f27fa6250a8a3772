package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/policy"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/pkg/response"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type createOrderRequest struct {
	User     string `json:"user"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Comment  string `json:"comment"`
	Rating   int    `json:"rating"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.Svc.Create(c.Request.Context(), middleware.Subject(c), application.CreateOrderInput{
		UserID:    req.User,
		ProductID: req.Product,
		Quantity:  req.Quantity,
		Comment:   req.Comment,
		Rating:    req.Rating,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Created(c, o)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	o, err := h.Svc.Get(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, o)
}

// Search answers GET /order?user_id=&startDate=&endDate=. The misspelled
// starDate is still accepted for older clients.
func (h *OrderHandler) Search(c *gin.Context) {
	start := c.Query("startDate")
	if start == "" {
		start = c.Query("starDate")
	}
	orders, err := h.Svc.Search(c.Request.Context(), policy.OrderQuery{
		UserID:    c.Query("user_id"),
		StartDate: start,
		EndDate:   c.Query("endDate"),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if len(orders) == 0 {
		response.NotFound(c)
		return
	}
	response.OK(c, orders)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	var patch entity.OrderPatch
	if !bindJSON(c, &patch) {
		return
	}
	o, err := h.Svc.Update(c.Request.Context(), middleware.Subject(c), id, patch)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	o, err := h.Svc.Delete(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, o)
}
