package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stocknest/models"
)

var ErrUserNotFound = errors.New("user not found")

type UsersController struct {
	DB     *gorm.DB
	Logger *zap.SugaredLogger
}

func (u UsersController) GetCurrentUser(c *gin.Context) {
	user, err := models.GetUserByID(u.DB, CurrentUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondErr(c, http.StatusNotFound, ErrUserNotFound)
			return
		}
		u.Logger.Errorf("Error getting user: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, user)
}
