package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain/policy"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserName  = "userName"
)

// Auth validates the bearer token and stores the subject in the Gin context.
// When rdb is set the token's session id must match the stored session.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, helpers.ErrMissingSecret) {
				response.Abort(c, http.StatusInternalServerError, "token secret is not configured", nil)
				return
			}
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}
		if _, err := policy.ToRecordID(claims.UserID()); err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token subject", nil)
			return
		}

		if rdb != nil {
			sid, err := helpers.SessionID(c.Request.Context(), rdb, claims.UserID())
			if err != nil && logger != nil {
				helpers.LogError(logger, "session lookup failed", err, logrus.Fields{"user_id": claims.UserID()})
			}
			if err != nil || sid == "" || sid != claims.SessionID {
				response.Abort(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
		}

		c.Set(CtxUserID, claims.UserID())
		c.Set(CtxUserName, claims.Name)
		c.Set(CtxUserEmail, claims.Email)
		c.Next()
	}
}

// Subject returns the authenticated user id. It is only valid behind Auth.
func Subject(c *gin.Context) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(c.GetString(CtxUserID))
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
