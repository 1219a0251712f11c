package server

import (
	"context"
	"log"
	"math/big"
	"net/http"
	"os"
	"strconv"

	"github.com/cyphera/delegatable/caveats"
	"github.com/cyphera/delegatable/constants"
	"github.com/cyphera/delegatable/db"
	"github.com/cyphera/delegatable/handlers"
	"github.com/cyphera/delegatable/helpers"
	"github.com/cyphera/delegatable/logger"
	"github.com/cyphera/delegatable/middleware"
	"github.com/cyphera/delegatable/services"
	"github.com/cyphera/delegatable/typeddata"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	dispatchHandler   *handlers.DispatchHandler
	revocationHandler *handlers.RevocationHandler
	adminHandler      *handlers.AdminHandler
	registryHandler   *handlers.RegistryHandler

	// Database
	dbQueries *db.Queries
	dbPool    *pgxpool.Pool

	// Services
	commonServices *handlers.CommonServices

	ownerKey string
)

// InitializeHandlers wires the database, the delegation engine, and the
// handlers from environment configuration.
func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	// --- Determine and Validate Stage ---
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = constants.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, constants.StageProd, constants.StageDev, constants.StageLocal)
	}

	// --- Initialize Logger (AFTER stage validation) ---
	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	ctx := context.Background()

	// --- Database Connection Setup ---
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}
	dbPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	if err := dbPool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	dbQueries = db.New(dbPool)

	// --- Signing Domain ---
	chainID := big.NewInt(1)
	if v := os.Getenv("CHAIN_ID"); v != "" {
		parsed, ok := new(big.Int).SetString(v, 10)
		if !ok {
			logger.Fatal("Invalid CHAIN_ID environment variable", zap.String("chain_id", v))
		}
		chainID = parsed
	}
	registryAddress := common.HexToAddress(os.Getenv("REGISTRY_ADDRESS"))
	encoder, err := typeddata.NewEncoder(typeddata.DefaultDomain(chainID, registryAddress))
	if err != nil {
		logger.Fatal("Failed to create typed data encoder", zap.Error(err))
	}

	// --- Delegation Engine ---
	caveatRegistry, err := caveats.DefaultRegistry()
	if err != nil {
		logger.Fatal("Failed to build caveat registry", zap.Error(err))
	}
	verifier := services.NewChainVerifierService(encoder, caveatRegistry)
	replayGuard := services.NewReplayGuardService(dbQueries)
	dispatcher := services.NewDispatcherService(dbQueries, dbPool, encoder, verifier, replayGuard)
	registryService := services.NewRegistryService(dbQueries)
	dispatcher.RegisterTarget(registryAddress, registryService)

	revocationService := services.NewRevocationService(dbQueries, encoder)
	publisherService := services.NewPublisherService(dbQueries)

	ownerKey = os.Getenv("OWNER_KEY")
	if ownerKey == "" {
		logger.Warn("OWNER_KEY not set; administrative surface is disabled")
	}

	commonServices = handlers.NewCommonServices(handlers.CommonServicesConfig{
		DB:         dbQueries,
		Dispatcher: dispatcher,
		Revocation: revocationService,
		Publisher:  publisherService,
		Registry:   registryService,
	})

	dispatchHandler = handlers.NewDispatchHandler(commonServices)
	revocationHandler = handlers.NewRevocationHandler(commonServices)
	adminHandler = handlers.NewAdminHandler(commonServices)
	registryHandler = handlers.NewRegistryHandler(commonServices)

	logger.Info("Handlers initialized",
		zap.String("registry_address", registryAddress.Hex()),
		zap.String("chain_id", chainID.String()),
	)
}

// InitializeRoutes registers all routes on the given engine.
func InitializeRoutes(r *gin.Engine) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders,
		constants.CorrelationIDHeader, constants.OwnerKeyHeader)
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationIDMiddleware())

	rps, burst := rateLimitConfig()
	r.Use(middleware.NewRateLimiter(rps, burst).Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/invocations", dispatchHandler.DispatchInvocations)
		v1.POST("/delegations/revoke", revocationHandler.RevokeDelegation)
		v1.GET("/delegations/:hash/revoked", revocationHandler.GetDelegationRevoked)
		v1.GET("/authorities/:address/revoked", revocationHandler.GetAuthorityRevoked)
		v1.GET("/publishers/:address", registryHandler.GetPublisher)
		v1.GET("/metadata", registryHandler.GetMetadata)

		admin := v1.Group("/admin", middleware.OwnerOnlyMiddleware(ownerKey))
		{
			admin.POST("/publishers/:address", adminHandler.AddPublisher)
			admin.DELETE("/publishers/:address", adminHandler.RemovePublisher)
			admin.POST("/authorities/:address/revoke", adminHandler.RevokeAuthority)
			admin.POST("/authorities/:address/unrevoke", adminHandler.UnrevokeAuthority)
		}
	}
}

// Close releases server-held resources.
func Close() {
	if dbPool != nil {
		dbPool.Close()
	}
}

func rateLimitConfig() (int, int) {
	rps := 20
	burst := 40
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rps = parsed
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			burst = parsed
		}
	}
	return rps, burst
}
