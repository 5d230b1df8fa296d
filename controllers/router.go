package controllers

import (
	"github.com/gin-gonic/gin"
)

type Router struct {
	HealthController *HealthController
	AuthController   *AuthController
	UsersController  *UsersController
	StocksController *StocksController
	SharesController *SharesController

	TokenSecret []byte
}

func (r Router) RegisterRoutes(router gin.IRouter) {
	//
	// Anonymous requests
	//
	router.GET("/health", r.HealthController.Status)
	router.POST("/api/users/register", r.AuthController.Register)
	router.POST("/api/users/login", r.AuthController.SignIn)
	router.GET("/api/stocks/prices", r.StocksController.GetPrices)

	//
	// Authorized requests
	//
	authorized := router.Group("/api", RequireAuth(r.TokenSecret))
	authorized.GET("/users/profile", r.UsersController.GetCurrentUser)

	authorized.GET("/stocks/favorites", r.StocksController.GetFavorites)
	authorized.POST("/stocks/favorites", r.StocksController.AddFavorite)
	authorized.DELETE("/stocks/favorites/:symbol", r.StocksController.RemoveFavorite)
	authorized.GET("/stocks/favorites/details", r.StocksController.GetFavoriteDetails)

	authorized.POST("/shares", r.SharesController.CreateShare)
	authorized.GET("/shares/with-me", r.SharesController.GetSharedWithMe)
	authorized.GET("/shares/with-me/details", r.SharesController.GetSharedWithMeDetails)
	authorized.GET("/shares/my-shares", r.SharesController.GetMyShares)
	authorized.DELETE("/shares/:shareId", r.SharesController.RevokeShare)
}
