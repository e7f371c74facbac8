package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze3d/api"
	api_i "github.com/beka-birhanu/vinom-maze3d/api/i"
	"github.com/beka-birhanu/vinom-maze3d/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze3d/api/maze"
	"github.com/beka-birhanu/vinom-maze3d/config"
	"github.com/beka-birhanu/vinom-maze3d/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze3d/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze3d/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-maze3d/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze3d/logger"
	"github.com/beka-birhanu/vinom-maze3d/service"
	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyMaxLen = 1000

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	designerRepo   *repo.DesignerRepo
	mazeRepo       *repo.MazeRepo
	mazeCache      i.MazeCache
	mazeHistory    i.SortedQueue
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	mazeService    i.MazeService
	authController api_i.Controller
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func initMongo(ctx context.Context) error {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	appLogger.Info("Connected to MongoDB")
	return nil
}

func initRedis(ctx context.Context) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis ping failed: %w", err)
	}
	appLogger.Info("Connected to Redis")
	return nil
}

func initRepos(ctx context.Context) error {
	designerRepo = repo.NewDesignerRepo(mongoClient, config.Envs.DBName, "designers")
	if err := designerRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("creating designer indexes: %w", err)
	}

	mazeRepo = repo.NewMazeRepo(mongoClient, config.Envs.DBName, "mazes")
	if err := mazeRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("creating maze indexes: %w", err)
	}
	appLogger.Info("Repositories initialized")
	return nil
}

func initStorage() {
	mazeCache = cache.NewRedisMazeCache(redisClient, config.Envs.CacheTTLSeconds)
	mazeHistory = sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.HistoryTTL, historyMaxLen)
	appLogger.Info("Maze cache and history initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() error {
	authLogger, err := logger.New("AUTH", config.ColorBlue, os.Stdout)
	if err != nil {
		return fmt.Errorf("creating auth service logger: %w", err)
	}

	authService, err = service.NewAuthService(designerRepo, jwtTokenizer, authLogger)
	if err != nil {
		return fmt.Errorf("creating auth service: %w", err)
	}
	appLogger.Info("Auth service initialized")
	return nil
}

func initMazeService() error {
	mazeLogger, err := logger.New("CARVER", config.ColorCyan, os.Stdout)
	if err != nil {
		return fmt.Errorf("creating maze service logger: %w", err)
	}

	mazeService, err = service.NewMazeService(&service.MazeConfig{
		Repo:     mazeRepo,
		Cache:    mazeCache,
		History:  mazeHistory,
		Logger:   mazeLogger,
		MaxCells: config.Envs.MaxCells,
	})
	if err != nil {
		return fmt.Errorf("creating maze service: %w", err)
	}
	appLogger.Info("Maze service initialized")
	return nil
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)
	mazeController = mazeapi.NewMazeController(mazeService)
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

// run wires the dependencies and serves until the HTTP server stops. Clients opened
// along the way are closed on every return path.
func run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := initMongo(ctx); err != nil {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error(fmt.Sprintf("Disconnecting MongoDB: %v", err))
		}
	}()

	if err := initRedis(ctx); err != nil {
		_ = redisClient.Close()
		return err
	}
	defer redisClient.Close()

	if err := initRepos(ctx); err != nil {
		return err
	}
	initStorage()
	initJWTTokenizer()
	if err := initAuthService(); err != nil {
		return err
	}
	if err := initMazeService(); err != nil {
		return err
	}
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

func main() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}
}
