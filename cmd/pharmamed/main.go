package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	. "github.com/pharmamed/orders/internal"
)

func main() {
	//decimals at json as string
	//https://github.com/shopspring/decimal/issues/21
	decimal.MarshalJSONWithoutQuotes = true

	cfg := NewConfig()
	z, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	sugaredLogger := z.Sugar()

	repository, err := NewRepository(cfg.DatabaseURI, sugaredLogger)
	if err != nil {
		sugaredLogger.Fatal(err)
	}

	export := NewExportGenerator(sugaredLogger)
	service := NewService(repository, export, cfg.DeleteCode, sugaredLogger)
	handlers := NewHandlers(service, sugaredLogger)

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")

	ord := api.Group("/orders")
	ord.Get("/", handlers.GetOrders)
	ord.Post("/", handlers.CreateOrder)

	ord.Get("/dates", handlers.GetDates)
	ord.Get("/export", handlers.ExportOrders)

	ord.Patch("/:id/status", handlers.SetOrderStatus)
	ord.Delete("/:id", handlers.DeleteOrder)

	go sugaredLogger.Fatal(app.Listen(cfg.RunAddress))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("Shutting down service...")
}
