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

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string  `json:"name"`
	UserID      string  `json:"user_id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), middleware.Subject(c), application.CreateProductInput{
		Name:        req.Name,
		UserID:      req.UserID,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Rating:      req.Rating,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Created(c, p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, p)
}

// Search answers GET /product?user_id=&search=&category=.
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.Svc.Search(c.Request.Context(), policy.ProductQuery{
		UserID:   c.Query("user_id"),
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if len(products) == 0 {
		response.NotFound(c)
		return
	}
	response.OK(c, products)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	cats, err := h.Svc.Categories(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, cats)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	var patch entity.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), middleware.Subject(c), id, patch)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	p, err := h.Svc.Delete(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, p)
}
