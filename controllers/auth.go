package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stocknest/models"
)

type AuthController struct {
	DB          *gorm.DB
	Logger      *zap.SugaredLogger
	TokenSecret []byte
	TokenTTL    time.Duration
}

type signedInUser struct {
	*models.User
	Token string `json:"token"`
}

func (a AuthController) Register(c *gin.Context) {
	type registerParams struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var payload registerParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	user, err := models.NewUser(payload.Name, payload.Username, payload.Email, payload.Password)
	if err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	if err := a.DB.Create(user).Error; err != nil {
		if models.IsDuplicate(err) {
			RespondBadRequestErr(c, models.ErrUserExists)
			return
		}
		a.Logger.Errorf("Error creating user: %v", err)
		RespondInternalErr(c)
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		a.Logger.Errorf("Error signing token: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondCreated(c, signedInUser{User: user, Token: token})
}

func (a AuthController) SignIn(c *gin.Context) {
	type signInParams struct {
		EmailOrUsername string `json:"emailOrUsername" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}

	var payload signInParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	user, err := models.GetUserByEmailOrUsername(a.DB, payload.EmailOrUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondErr(c, http.StatusUnauthorized, ErrBadCredentials)
			return
		}
		a.Logger.Errorf("Error getting user: %v", err)
		RespondInternalErr(c)
		return
	}

	if !user.CheckPassword(payload.Password) {
		RespondErr(c, http.StatusUnauthorized, ErrBadCredentials)
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		a.Logger.Errorf("Error signing token: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, signedInUser{User: user, Token: token})
}

func (a AuthController) issueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(a.TokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.TokenSecret)
}
