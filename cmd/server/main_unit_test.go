package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ahorros.backend/internal/config"
	"ahorros.backend/internal/infrastructure/datasources"
	plog "ahorros.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origRegisterer := registerer
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		registerer = origRegisterer
		runServer = origRunServer
	})

	loadDotenv = func(...string) error { return nil }
	initLog = plog.Init
	registerer = prometheus.NewRegistry()
}

func baseTestConfig(t *testing.T) func() *config.Config {
	dir := t.TempDir()
	return func() *config.Config {
		return &config.Config{
			Server: config.ServerConfig{
				Port:        "18080",
				Env:         "development",
				BaseURL:     "http://localhost:18080",
				FrontendURL: "http://localhost:5173",
			},
			Database: config.DatabaseConfig{
				Driver:     config.DriverSQLite,
				SQLitePath: filepath.Join(dir, "ahorros.db"),
			},
			Redis: config.RedisConfig{
				Enabled:        false,
				URL:            "redis://localhost:6379",
				RankingTTL:     time.Minute,
				IdempotencyTTL: time.Hour,
			},
			JWT: config.JWTConfig{
				Secret:        "secret",
				AccessExpiry:  15 * time.Minute,
				RefreshExpiry: 24 * time.Hour,
			},
			Savings: config.SavingsConfig{
				DefaultGoal:    decimal.NewFromInt(500),
				MinDeposit:     decimal.NewFromInt(5),
				InactivityDays: 30,
				DefaultPlan:    "Ahorro Campamento 2027",
			},
			Receipts: config.ReceiptsConfig{
				Dir:         filepath.Join(dir, "receipts"),
				PublicPath:  "/receipts",
				CountryCode: "591",
			},
		}
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)

	cfg := baseTestConfig(t)
	loadCfg = func() *config.Config {
		c := cfg()
		c.Redis.Enabled = true
		return c
	}
	initRedis = func(string, string) error { return errors.New("redis down") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected redis init error")
	}
}

func TestRunMainProcess_RedisDisabledSkipsInit(t *testing.T) {
	withMainHooks(t)

	loadCfg = baseTestConfig(t)
	initRedis = func(string, string) error {
		t.Fatal("redis must not be initialized when disabled")
		return nil
	}
	runServer = func(*gin.Engine, string) error { return nil }

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)

	loadCfg = baseTestConfig(t)
	openDB = func(config.DatabaseConfig) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)

	loadCfg = baseTestConfig(t)
	openDB = datasources.NewConnection
	runServer = func(*gin.Engine, string) error { return errors.New("listen failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected server run error")
	}
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)

	loadCfg = baseTestConfig(t)
	var served *gin.Engine
	runServer = func(r *gin.Engine, port string) error {
		if port != "18080" {
			t.Fatalf("unexpected port %s", port)
		}
		served = r
		return nil
	}

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if served == nil || len(served.Routes()) < 40 {
		t.Fatalf("expected the full router to be served")
	}
}

func TestRunMainProcess_StartsBadgeJob(t *testing.T) {
	withMainHooks(t)

	cfg := baseTestConfig(t)
	loadCfg = func() *config.Config {
		c := cfg()
		c.Savings.ReevaluationInterval = time.Hour
		return c
	}
	runServer = func(*gin.Engine, string) error { return nil }

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
