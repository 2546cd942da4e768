package main

import (
	"context"
	"errors"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/HarmoniqaOrg/PharmOS/config"
	"github.com/HarmoniqaOrg/PharmOS/internal/api"
	"github.com/HarmoniqaOrg/PharmOS/internal/database"
	"github.com/HarmoniqaOrg/PharmOS/internal/mlmodel"
	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
	"github.com/HarmoniqaOrg/PharmOS/internal/services"
	"github.com/HarmoniqaOrg/PharmOS/internal/storage"
	"github.com/HarmoniqaOrg/PharmOS/pkg/logger"
)

// @title PharmOS Model Registry API
// @version 1.0
// @description Versioned model registry and deployment lifecycle service.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}

	if err := database.ConnectRedis(cfg); err != nil {
		logger.Log.Fatal("failed to connect redis", zap.Error(err))
	}

	var artifacts storage.ArtifactStore
	var localStore *storage.LocalStore
	switch cfg.ArtifactBackend {
	case "oss":
		artifacts = storage.NewOSSStore(cfg)
	default:
		localStore, err = storage.NewLocalStore(cfg.ArtifactRoot)
		if err != nil {
			logger.Log.Fatal("failed to open artifact store", zap.Error(err))
		}
		artifacts = localStore
	}

	codecs := registry.NewCodecs()
	mlmodel.RegisterCodecs(codecs)

	ctx := context.Background()
	reg, err := registry.New(ctx, database.NewStateStore(db), artifacts, codecs, logger.Log)
	if err != nil {
		logger.Log.Fatal("failed to build registry", zap.Error(err))
	}
	reg.EnableSlotCache(database.RedisClient, time.Hour)

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, reg); err != nil {
			logger.Log.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	// Only local storage can be enumerated for orphans
	if localStore != nil {
		sweeper := services.NewOrphanSweeper(reg, localStore,
			time.Duration(cfg.SweepIntervalMinutes)*time.Minute,
			cfg.SweepRemoveOrphans, logger.Log)
		go sweeper.Start()
		defer sweeper.Stop()
	}

	router := api.NewRouter(reg)
	if err := router.Run(cfg.ServerAddr); err != nil {
		logger.Log.Fatal("failed to run server", zap.Error(err))
	}
}

// seedDemoData registers a small QSAR lineage so a fresh instance has
// something to browse. Re-running against an existing database is a no-op.
func seedDemoData(ctx context.Context, reg *registry.Registry) error {
	const modelID = "solubility-qsar"

	_, err := reg.RegisterModel(ctx, modelID, mlmodel.TypeQSAR, "Aqueous solubility prediction from molecular descriptors")
	if err != nil {
		if errors.Is(err, registry.ErrAlreadyExists) {
			logger.Log.Info("demo data already present")
			return nil
		}
		return err
	}

	v1 := &mlmodel.QSARModel{
		Name:        "solubility-linear",
		TargetLabel: "logS",
		Coefficients: map[string]float64{
			"logp":        -0.74,
			"mol_weight":  -0.0066,
			"h_donors":    0.32,
			"h_acceptors": 0.18,
		},
		Intercept: 0.16,
	}
	_, err = reg.CreateVersion(ctx, modelID, "1.0.0", v1, registry.CreateVersionOptions{
		TrainingData:       []string{"delaney-2004", "huuskonen-2000"},
		PerformanceMetrics: map[string]float64{"r2": 0.81, "rmse": 0.94},
		Metadata:           map[string]interface{}{"descriptor_set": "rdkit-basic"},
	})
	if err != nil {
		return err
	}

	v2 := &mlmodel.QSARModel{
		Name:        "solubility-linear",
		TargetLabel: "logS",
		Coefficients: map[string]float64{
			"logp":           -0.71,
			"mol_weight":     -0.0062,
			"h_donors":       0.29,
			"h_acceptors":    0.21,
			"rotatable_bnds": -0.04,
		},
		Intercept: 0.11,
	}
	_, err = reg.CreateVersion(ctx, modelID, "1.1.0", v2, registry.CreateVersionOptions{
		TrainingData:       []string{"delaney-2004", "huuskonen-2000", "aqsoldb-2019"},
		PerformanceMetrics: map[string]float64{"r2": 0.85, "rmse": 0.83},
		Metadata:           map[string]interface{}{"descriptor_set": "rdkit-extended"},
		ParentVersion:      "1.0.0",
	})
	if err != nil {
		return err
	}

	if _, err := reg.Deploy(ctx, modelID, "1.1.0", "production", true); err != nil {
		return err
	}

	logger.Log.Info("demo data seeded", zap.String("model_id", modelID))
	return nil
}
