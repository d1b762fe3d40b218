package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nghialuong53/tana-tra-quan/internal/config"
	"github.com/nghialuong53/tana-tra-quan/internal/engine"
	"github.com/nghialuong53/tana-tra-quan/internal/handlers"
	"github.com/nghialuong53/tana-tra-quan/internal/middleware"
	"github.com/nghialuong53/tana-tra-quan/internal/models"
	"github.com/nghialuong53/tana-tra-quan/internal/printer"
	"github.com/nghialuong53/tana-tra-quan/internal/storage"
)

func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway, err := openGateway(ctx)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.New(gateway)
	eng.Load(ctx, defaultCatalog())
	eng.OnOrderCommitted(printer.New(config.AppEnv.ShopName, os.Stdout).OrderCommitted)

	r := gin.Default()

	r.GET("/menu", handlers.GetMenu(eng))
	r.GET("/orders", handlers.GetOrders(eng))
	r.GET("/report/revenue", handlers.GetRevenue(eng))

	pos := r.Group("/")
	pos.Use(middleware.AuthGuard(config.AppEnv.JWTSecret))
	{
		pos.GET("/cart", handlers.GetCart(eng))
		pos.POST("/cart/lines", handlers.AddCartLine(eng))
		pos.PATCH("/cart/lines/:id", handlers.ChangeCartQty(eng))
		pos.DELETE("/cart/lines/:id", handlers.RemoveCartLine(eng))
		pos.POST("/checkout", handlers.Checkout(eng))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/products", handlers.GetAllProducts(eng))
		admin.POST("/products", handlers.UpsertProduct(eng))
		admin.PATCH("/products/:id/active", handlers.SetProductActive(eng))
		admin.DELETE("/orders/:id", handlers.CancelOrder(eng))
	}

	srv := &http.Server{
		Addr:    ":" + config.AppEnv.Port,
		Handler: r,
	}

	go func() {
		log.Println("listening on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("server shutdown:", err)
	}
	// Pending durability writes must land before the process exits.
	if err := eng.Close(shutdownCtx); err != nil {
		log.Println("state flush:", err)
	}
}

func openGateway(ctx context.Context) (storage.Gateway, error) {
	switch config.AppEnv.StorageDriver {
	case "mongo":
		return storage.ConnectMongo(ctx, config.AppEnv.MongoURI, config.AppEnv.DBName)
	case "redis":
		return storage.NewRedisGateway(ctx, config.AppEnv.RedisAddr, config.AppEnv.RedisPassword, config.AppEnv.RedisDB, "tana")
	default:
		log.Println("storage driver", config.AppEnv.StorageDriver, "- state is not durable")
		return storage.NewMemoryGateway(), nil
	}
}

// defaultCatalog seeds a fresh till on first boot; it is replaced by stored
// data as soon as any exists.
func defaultCatalog() []models.Product {
	milkTea := models.Money(30000)
	peachTea := models.Money(35000)
	return []models.Product{
		{ID: "1", Name: "Trà sữa truyền thống", Active: true, FlatPrice: &milkTea},
		{ID: "2", Name: "Trà đào", Active: true, FlatPrice: &peachTea},
	}
}
