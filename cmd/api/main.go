package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"stocknest/controllers"
	"stocknest/core"
	"stocknest/internal"
	"stocknest/internal/finnhub"
	"stocknest/internal/quotes"
	"stocknest/internal/sharing"
	"stocknest/models"
)

func main() {
	godotenv.Load()

	// connect to the database
	db, err := core.InitDB()
	if err != nil {
		panic(err)
	}

	// auto migrate the database
	err = db.AutoMigrate(
		&models.User{},
		&models.Favorite{},
		&models.Share{},
	)
	if err != nil {
		panic(err)
	}

	server := createServer(db)
	server.Run()
}

func createServer(db *gorm.DB) *gin.Engine {
	// set up http server
	engine := gin.Default()
	err := engine.SetTrustedProxies(nil)
	if err != nil {
		panic(err)
	}

	engine.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "https://"+os.Getenv("UI_DOMAIN"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	logger, err := internal.NewLogger()
	if err != nil {
		panic(err)
	}

	// The provider credential is read once here and injected; a missing key
	// surfaces as a whole-request configuration error at aggregation time.
	apiKey := os.Getenv("FINNHUB_API_KEY")
	aggregator := quotes.NewAggregator(
		finnhub.NewClient(apiKey),
		apiKey,
		quotes.DefaultTimeout,
		logger.With("component", "quotes"),
	)

	tokenSecret := []byte(os.Getenv("JWT_SECRET"))

	router := controllers.Router{
		TokenSecret: tokenSecret,
		HealthController: &controllers.HealthController{
			DB:     db,
			Logger: logger.With("controller", "health"),
		},
		AuthController: &controllers.AuthController{
			DB:          db,
			Logger:      logger.With("controller", "auth"),
			TokenSecret: tokenSecret,
			TokenTTL:    30 * 24 * time.Hour,
		},
		UsersController: &controllers.UsersController{
			DB:     db,
			Logger: logger.With("controller", "users"),
		},
		StocksController: &controllers.StocksController{
			DB:         db,
			Logger:     logger.With("controller", "stocks"),
			Aggregator: aggregator,
		},
		SharesController: &controllers.SharesController{
			Logger:     logger.With("controller", "shares"),
			Ledger:     sharing.NewLedger(db, logger.With("component", "sharing")),
			Aggregator: aggregator,
		},
	}

	router.RegisterRoutes(engine)
	return engine
}
