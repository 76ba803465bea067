package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simple-ecommerce/storefront-service/internal/config"
	"github.com/simple-ecommerce/storefront-service/internal/handlers"
	"github.com/simple-ecommerce/storefront-service/internal/messaging"
	"github.com/simple-ecommerce/storefront-service/internal/repository"
	"github.com/simple-ecommerce/storefront-service/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	log.Println("Storefront service starting...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := repository.Open(cfg.DB.Driver, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Printf("Database connected: driver=%s", cfg.DB.Driver)

	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.AMQP.Enabled() {
		client := messaging.NewRabbitMQClient(messaging.Config{
			URL:        cfg.AMQP.URL,
			Exchange:   cfg.AMQP.Exchange,
			RetryCount: cfg.AMQP.RetryCount,
			RetryDelay: cfg.AMQP.RetryDelay,
		})
		if err := client.Connect(); err != nil {
			return err
		}
		defer client.Close()
		publisher = messaging.NewRabbitMQPublisher(client)
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	identityService := service.NewIdentityService(userRepo)
	catalogService := service.NewCatalogService(productRepo)
	orderService := service.NewOrderService(orderRepo, publisher)

	app := handlers.NewApp(
		db,
		handlers.NewAuthMiddleware(identityService),
		handlers.NewProductHandler(catalogService),
		handlers.NewOrderHandler(orderService),
		handlers.NewUserHandler(identityService),
	)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Storefront service shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Storefront service listening on %s", cfg.Server.Addr)
	return app.Listen(cfg.Server.Addr)
}
