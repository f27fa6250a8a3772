package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope used for gate and configuration failures
// (401 from the auth middleware, 500 on a missing secret) and for the
// health endpoints.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	res := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, res)
	return res
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	res := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.JSON(status, res)
	return res
}

// Abort writes the error envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err interface{}) {
	Error[any](ctx, status, message, err)
	ctx.Abort()
}

// The helpers below write the plain bodies the resource routes return.

func Created(ctx *gin.Context, v any) { ctx.JSON(http.StatusCreated, v) }

func OK(ctx *gin.Context, v any) { ctx.JSON(http.StatusOK, v) }

// NotFound writes 404 with an empty body.
func NotFound(ctx *gin.Context) { ctx.Status(http.StatusNotFound) }

// Forbidden writes 403 {"message": reason}.
func Forbidden(ctx *gin.Context, reason string) {
	ctx.JSON(http.StatusForbidden, gin.H{"message": reason})
}

// BadRequest writes 400 with the error message encoded as a JSON string.
func BadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, message)
}
