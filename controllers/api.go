package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrAccessDenied   = errors.New("access denied")
	ErrInternalError  = errors.New("internal error")
	ErrBadCredentials = errors.New("incorrect email/username or password")
)

type apiResponse struct {
	Errors []string `json:"errors,omitempty"`
	Data   any      `json:"data,omitempty"`
}

func RespondOK(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, apiResponse{Data: obj})
}

func RespondCreated(c *gin.Context, obj any) {
	c.JSON(http.StatusCreated, apiResponse{Data: obj})
}

func RespondErr(c *gin.Context, status int, errs ...error) {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}

	c.AbortWithStatusJSON(status, apiResponse{Errors: messages})
}

func RespondBadRequestErr(c *gin.Context, errs ...error) {
	RespondErr(c, http.StatusBadRequest, errs...)
}

func RespondInternalErr(c *gin.Context) {
	RespondErr(c, http.StatusInternalServerError, ErrInternalError)
}
