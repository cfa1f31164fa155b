package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// 本地键值存储后端。
const (
	LocalStoreSQLite = "sqlite"
	LocalStoreRedis  = "redis"
)

// AppConfig 聚合运行时配置，尽量通过环境变量注入，避免硬编码。
type AppConfig struct {
	HTTPAddr string

	// 两个远端协作方的基址（商品服务 / 订单服务）
	ProductsAPIBase string
	OrdersAPIBase   string

	// 订单服务要求的固定请求头
	OrdersBranchID       string
	OrdersFacilityID     string
	OrdersAcceptLanguage string

	// 远端调用超时（网关层沿用 http.Client 默认语义，核心层不设自身超时）
	HTTPTimeout time.Duration

	// 本地兜底订单的键值存储后端：sqlite（默认）或 redis
	LocalStore string
	DBPath     string
	RedisAddr  string
	RedisDB    int

	// 后台自动刷新周期，0 表示关闭
	RefreshInterval time.Duration

	// 写操作的简单 console 令牌（demo 级别保护）
	ConsoleToken string
}

// Load 读取并校验配置，缺失时使用默认值。
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		ProductsAPIBase:      getEnv("PRODUCTS_API_BASE", "http://localhost:8000"),
		OrdersAPIBase:        getEnv("ORDERS_API_BASE", "http://localhost:8001"),
		OrdersBranchID:       getEnv("ORDERS_BRANCH_ID", "716"),
		OrdersFacilityID:     getEnv("ORDERS_FACILITY_ID", "456"),
		OrdersAcceptLanguage: getEnv("ORDERS_ACCEPT_LANGUAGE", "en-GB,en;q=0.9,kn;q=0.8,en-US;q=0.7,ml;q=0.6"),
		HTTPTimeout:          5 * time.Second,
		LocalStore:           getEnv("LOCAL_STORE", LocalStoreSQLite),
		DBPath:               getEnv("DB_PATH", "inventory_console.db"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              0,
		RefreshInterval:      30 * time.Second,
		ConsoleToken:         getEnv("CONSOLE_TOKEN", "dev-console-token"),
	}

	if cfg.ProductsAPIBase == "" {
		return AppConfig{}, fmt.Errorf("PRODUCTS_API_BASE must not be empty")
	}
	if cfg.OrdersAPIBase == "" {
		return AppConfig{}, fmt.Errorf("ORDERS_API_BASE must not be empty")
	}

	timeoutSec, err := getEnvInt("HTTP_TIMEOUT_SEC", int(cfg.HTTPTimeout.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid HTTP_TIMEOUT_SEC: %w", err)
	}
	if timeoutSec <= 0 {
		return AppConfig{}, fmt.Errorf("HTTP_TIMEOUT_SEC must be > 0")
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	switch cfg.LocalStore {
	case LocalStoreSQLite, LocalStoreRedis:
	default:
		return AppConfig{}, fmt.Errorf("LOCAL_STORE must be %q or %q, got %q", LocalStoreSQLite, LocalStoreRedis, cfg.LocalStore)
	}
	if cfg.LocalStore == LocalStoreSQLite && cfg.DBPath == "" {
		return AppConfig{}, fmt.Errorf("DB_PATH must not be empty")
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	refreshSec, err := getEnvInt("REFRESH_INTERVAL_SEC", int(cfg.RefreshInterval.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REFRESH_INTERVAL_SEC: %w", err)
	}
	if refreshSec < 0 {
		return AppConfig{}, fmt.Errorf("REFRESH_INTERVAL_SEC must be >= 0")
	}
	cfg.RefreshInterval = time.Duration(refreshSec) * time.Second

	return cfg, nil
}

// getEnv 读取字符串环境变量，若为空则返回默认值。
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt 读取整数环境变量，若为空则返回默认值。
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
