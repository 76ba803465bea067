package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simple-ecommerce/storefront-service/internal/config"
	"github.com/simple-ecommerce/storefront-service/internal/domain"
	"github.com/simple-ecommerce/storefront-service/internal/repository"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with realistic sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

const (
	seedProductCount = 50
	seedOrderCount   = 15
)

var seedAdjectives = []string{
	"Compact", "Deluxe", "Rustic", "Sleek", "Ergonomic",
	"Portable", "Vintage", "Premium", "Handmade", "Durable",
}

var seedNouns = []string{
	"Lamp", "Chair", "Keyboard", "Backpack", "Mug",
	"Notebook", "Speaker", "Blanket", "Bottle", "Headset",
}

func runSeed(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := repository.Open(cfg.DB.Driver, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Get or create the admin account.
	admin, err := userRepo.GetByUsername(ctx, "admin")
	if errors.Is(err, domain.ErrNotFound) {
		admin = &domain.User{Username: "admin", IsStaff: true}
		if err := userRepo.Create(ctx, admin); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	// Clear existing data to avoid duplicates on re-run. Items and
	// orders go first through the cascades.
	for _, table := range []string{"order_items", "orders", "products"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data...")

	log.Println("Creating products...")
	products := make([]*domain.Product, 0, seedProductCount)
	for i := 0; i < seedProductCount; i++ {
		product := &domain.Product{
			Name: fmt.Sprintf("%s %s #%d",
				seedAdjectives[rand.Intn(len(seedAdjectives))],
				seedNouns[rand.Intn(len(seedNouns))],
				i+1),
			Description: "Seeded catalog item.",
			Price:       decimal.NewFromInt(int64(rand.Intn(9900) + 100)).Div(decimal.NewFromInt(100)),
			Stock:       int64(rand.Intn(101)),
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		products = append(products, product)
	}
	log.Printf("Created %d products.", len(products))

	log.Println("Creating orders...")
	for i := 0; i < seedOrderCount; i++ {
		numItems := rand.Intn(5) + 1
		picked := rand.Perm(len(products))[:numItems]
		items := make([]domain.NewOrderItem, numItems)
		for j, idx := range picked {
			items[j] = domain.NewOrderItem{
				ProductID: products[idx].ID,
				Quantity:  int64(rand.Intn(5) + 1),
			}
		}
		order := domain.NewOrder(admin.ID, domain.OrderStatusPending)
		if err := orderRepo.Create(ctx, order, items); err != nil {
			return err
		}
	}

	log.Println("Successfully populated the database with sample data.")
	return nil
}
