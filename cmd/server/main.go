package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/lfmelo/stockboard/internal/config"
	"github.com/lfmelo/stockboard/internal/database"
	"github.com/lfmelo/stockboard/internal/handler"
	"github.com/lfmelo/stockboard/internal/middleware"
	"github.com/lfmelo/stockboard/internal/quote"
	"github.com/lfmelo/stockboard/internal/repository"
	"github.com/lfmelo/stockboard/internal/router"
	"github.com/lfmelo/stockboard/internal/service"
)

func main() {
	// .env is a development convenience; in production everything comes
	// from real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var quoteCache echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		quoteCache = middleware.QuoteCache(config.LoadQuoteCacheConfig(), rdb)
	} else {
		log.Printf("redis unavailable, quote cache disabled")
	}

	users := repository.NewUserRepo(db)
	comments := repository.NewCommentRepo(db)
	events := service.NewPublisher()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS()) // the dashboard frontend is served from another origin

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, events))
	router.RegisterUsers(e, handler.NewUserHandler(cfg, users), cfg.JWTSecret)
	router.RegisterComments(e, handler.NewCommentHandler(comments, events), cfg.JWTSecret)
	router.RegisterQuotes(e, handler.NewQuoteHandler(quote.NewClient("")), quoteCache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
