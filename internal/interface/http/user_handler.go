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

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Created(c, u)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, gin.H{"token": token})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	u, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, u)
}

func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.Svc.Search(c.Request.Context(), policy.UserQuery{
		Email:  c.Query("email"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if len(users) == 0 {
		response.NotFound(c)
		return
	}
	response.OK(c, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	var patch entity.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), middleware.Subject(c), id, patch)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := policy.ToRecordID(c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	u, err := h.Svc.Delete(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.OK(c, u)
}
