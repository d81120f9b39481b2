package main

import (
	"context"
	"flag"
	"log"
	"os"
	"shopsmart/business/similarity"
	"shopsmart/business/trending"
	psqlRepo "shopsmart/internal/repository/postgres"
	redisRepo "shopsmart/internal/repository/redis"
	"shopsmart/pkg/config"
	"shopsmart/pkg/database"
	redisdb "shopsmart/pkg/database/redis"
	"shopsmart/pkg/logger"
	"shopsmart/pkg/metrics"
	"time"
)

// pipeline-runner executes the batch scoring jobs once and exits. It is
// meant to be driven by cron or a scheduler, not to daemonize.
func main() {
	runTrending := flag.Bool("trending", false, "recompute trending scores")
	runSimilarity := flag.Bool("similarity", false, "recompute item-to-item similarity")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run deadline")
	flag.Parse()

	// No flags means run everything.
	if !*runTrending && !*runSimilarity {
		*runTrending = true
		*runSimilarity = true
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting pipeline runner", "trending", *runTrending, "similarity", *runSimilarity)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, cache invalidation skipped", "error", err)
		redisClient = nil
	}

	metrics.Init()

	eventRepo := psqlRepo.NewEventRepository(db)
	trendingRepo := psqlRepo.NewTrendingRepository(db)
	similarityRepo := psqlRepo.NewSimilarityRepository(db)
	cacheRepo := redisRepo.NewCacheRepository(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	failed := false

	if *runTrending {
		scorer := trending.NewScorer(eventRepo, trendingRepo, cacheRepo)
		if err := scorer.Run(ctx); err != nil {
			logger.Error("Trending pipeline failed", "error", err)
			failed = true
		}
	}

	if *runSimilarity {
		engine := similarity.NewEngine(eventRepo, similarityRepo, cacheRepo, similarity.EngineConfig{
			LookbackDays:    cfg.Recommender.LookbackDays,
			MinCoOccurrence: cfg.Recommender.MinCoOccurrence,
			TopK:            cfg.Recommender.TopKSimilar,
			BlockSize:       cfg.Recommender.SimilarityBlockSize,
		})
		if err := engine.Run(ctx); err != nil {
			logger.Error("Similarity pipeline failed", "error", err)
			failed = true
		}
	}

	if redisClient != nil {
		redisdb.CloseRedisClient(redisClient)
	}

	if failed {
		os.Exit(1)
	}

	logger.Info("Pipeline runner finished")
}
