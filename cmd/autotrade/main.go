package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/VipinKumar1310/autotrade/internal/auth"
	"github.com/VipinKumar1310/autotrade/internal/connect"
	"github.com/VipinKumar1310/autotrade/internal/fixtures"
	"github.com/VipinKumar1310/autotrade/internal/infrastructure/logger"
	"github.com/VipinKumar1310/autotrade/internal/infrastructure/storage"
	"github.com/VipinKumar1310/autotrade/internal/store"
	"github.com/VipinKumar1310/autotrade/internal/web"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Auth struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"auth"`
	Delays struct {
		LoginMs   int `yaml:"login_ms"`
		ConnectMs int `yaml:"connect_ms"`
		SubmitMs  int `yaml:"submit_ms"`
	} `yaml:"delays"`
	Logging struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	} `yaml:"logging"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv lets a .env or the environment override the file config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("AUTOTRADE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("AUTOTRADE_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("AUTOTRADE_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTOTRADE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func main() {
	// Optional; the file config is the baseline.
	_ = godotenv.Load()

	configPath := os.Getenv("AUTOTRADE_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyEnv(cfg)

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sessionStore, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer sessionStore.Close()

	fx, err := fixtures.Load()
	if err != nil {
		log.Fatal("Failed to load fixtures", zap.Error(err))
	}

	st, err := store.New(context.Background(), fx, sessionStore, log)
	if err != nil {
		log.Fatal("Failed to init store", zap.Error(err))
	}

	delays := connect.Delays{
		Login:   time.Duration(cfg.Delays.LoginMs) * time.Millisecond,
		Connect: time.Duration(cfg.Delays.ConnectMs) * time.Millisecond,
		Submit:  time.Duration(cfg.Delays.SubmitMs) * time.Millisecond,
	}
	connector := connect.New(st, delays, log)

	ttl := time.Duration(cfg.Auth.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	jwtManager := auth.NewJWTManager(cfg.Auth.Secret, ttl)

	server := web.NewServer(cfg.Server.Port, st, connector, jwtManager, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Web server failed", zap.Error(err))
		}
	}()

	<-stop
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
}
