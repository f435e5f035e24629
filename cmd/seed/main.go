package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"gutly/database"
	"gutly/internal/config"
	"gutly/internal/logging"
	"gutly/internal/repository"
	"gutly/internal/utils"

	"go.uber.org/zap"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedUser := seedCmd.String("user", "dev-user-123", "Whop user id that owns the sample meals")
	days := seedCmd.Int("days", utils.DefaultSeedDays, "Number of days of history to create, ending today")
	perDay := seedCmd.Int("per-day", utils.DefaultMealsPerDay, "Meals per day")

	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)
	clearUser := clearCmd.String("user", "dev-user-123", "Whop user id whose meals are deleted")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.Connect(cfg.Database, cfg.Server.Environment, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}
	repo := repository.NewMealRepository(db)

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		meals := utils.SampleMeals(*seedUser, *days, *perDay, time.Now().In(cfg.Location()), rand.New(rand.NewSource(time.Now().UnixNano())))
		n, err := utils.SeedMeals(ctx, repo, meals)
		if err != nil {
			logger.Fatal("seeding failed", zap.Int("inserted", n), zap.Error(err))
		}
		logger.Info("seeded meals", zap.String("user_id", *seedUser), zap.Int("count", n))

	case "clear":
		clearCmd.Parse(os.Args[2:])
		n, err := repo.DeleteAllByUser(ctx, *clearUser)
		if err != nil {
			logger.Fatal("clear failed", zap.Error(err))
		}
		logger.Info("deleted meals", zap.String("user_id", *clearUser), zap.Int64("count", n))

	default:
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Usage:")
	fmt.Println("  seed seed  [-user id] [-days n] [-per-day n]   insert sample meals for a user")
	fmt.Println("  seed clear [-user id]                          delete all meals of a user")
}
