package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/mazadksa/mazad/infra/initializer"
	"github.com/mazadksa/mazad/pkg/app"
	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/domain/reward"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/repository"
)

const migrationsPath = "file://infra/migrations"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println("Commands:")
	fmt.Println("  migrate-up    apply pending schema migrations")
	fmt.Println("  migrate-down  roll back all schema migrations")
	fmt.Println("  seed          insert the category and achievement catalogs")
	fmt.Println("  finalize      close expired auctions and pick winners")
}

func run(cmd string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	switch cmd {
	case "migrate-up":
		return migrateUp(cfg)
	case "migrate-down":
		return migrateDown(cfg)
	case "seed":
		return seed(cfg)
	case "finalize":
		return finalize(cfg)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func migrateUp(cfg *config.App) error {
	m, err := migrate.New(migrationsPath, cfg.DB.Url)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	fmt.Println("migrations applied")
	return nil
}

func migrateDown(cfg *config.App) error {
	m, err := migrate.New(migrationsPath, cfg.DB.Url)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	fmt.Println("migrations rolled back")
	return nil
}

// seed inserts the category and achievement catalogs. It is a no-op
// when either catalog already has rows, so re-running is safe.
func seed(cfg *config.App) error {
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	return deps.Uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := seedCategories(ctx, uow); err != nil {
			return err
		}
		return seedAchievements(ctx, uow)
	})
}

func seedCategories(ctx context.Context, uow repository.UnitOfWork) error {
	auctionRepo, err := uow.AuctionRepository()
	if err != nil {
		return err
	}
	count, err := auctionRepo.CountCategories(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("categories already seeded, skipping")
		return nil
	}
	categories := []dto.CategoryCreate{
		{NameAr: "سيارات", NameEn: "Cars", Slug: "cars"},
		{NameAr: "عقارات", NameEn: "Real Estate", Slug: "real-estate"},
		{NameAr: "إلكترونيات", NameEn: "Electronics", Slug: "electronics"},
		{NameAr: "مجوهرات", NameEn: "Jewelry", Slug: "jewelry"},
		{NameAr: "ساعات", NameEn: "Watches", Slug: "watches"},
		{NameAr: "تحف وأنتيكات", NameEn: "Antiques", Slug: "antiques"},
		{NameAr: "لوحات فنية", NameEn: "Art", Slug: "art"},
		{NameAr: "أرقام مميزة", NameEn: "Special Numbers", Slug: "special-numbers"},
	}
	for i := range categories {
		if err := auctionRepo.CreateCategory(ctx, &categories[i]); err != nil {
			return err
		}
	}
	fmt.Printf("seeded %d categories\n", len(categories))
	return nil
}

func seedAchievements(ctx context.Context, uow repository.UnitOfWork) error {
	rewardRepo, err := uow.RewardRepository()
	if err != nil {
		return err
	}
	count, err := rewardRepo.CountAchievements(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("achievements already seeded, skipping")
		return nil
	}
	achievements := []dto.AchievementCreate{
		{NameAr: "أول مزايدة", NameEn: "First Bid", Category: reward.CategoryBidding, Threshold: 1, Icon: "🔨", Active: true},
		{NameAr: "مزايد نشط", NameEn: "Active Bidder", Category: reward.CategoryBidding, Threshold: 10, Icon: "⚡", Active: true},
		{NameAr: "مزايد محترف", NameEn: "Pro Bidder", Category: reward.CategoryBidding, Threshold: 50, Icon: "🏆", Active: true},
		{NameAr: "جامع النقاط", NameEn: "Point Collector", Category: reward.CategoryPoints, Threshold: 100, Icon: "💰", Active: true},
		{NameAr: "ثري النقاط", NameEn: "Point Tycoon", Category: reward.CategoryPoints, Threshold: 1000, Icon: "💎", Active: true},
		{NameAr: "مستوى متقدم", NameEn: "Level Up", Category: reward.CategoryLevel, Threshold: 4, Icon: "🚀", Active: true},
		{NameAr: "قمة المستويات", NameEn: "Top Level", Category: reward.CategoryLevel, Threshold: 10, Icon: "👑", Active: true},
	}
	for i := range achievements {
		if err := rewardRepo.CreateAchievement(ctx, &achievements[i]); err != nil {
			return err
		}
	}
	fmt.Printf("seeded %d achievements\n", len(achievements))
	return nil
}

// finalize closes every active auction past its end time, picking
// winners and emitting the end-of-auction notifications.
func finalize(cfg *config.App) error {
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	a := app.New(deps, cfg)
	finalized, err := a.AuctionService.FinalizeExpired(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("finalized %d auctions\n", finalized)
	return nil
}
