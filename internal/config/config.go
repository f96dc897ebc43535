package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// 支援的經濟後端
const (
	BackendMock  = "mock"
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

// Config 總配置結構
type Config struct {
	App     AppConfig     `yaml:"app"`
	Economy EconomyConfig `yaml:"economy"`
	Redis   RedisConfig   `yaml:"redis"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Demo    DemoConfig    `yaml:"demo"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

// EconomyConfig 決定掛載哪一種經濟 provider 後端與貨幣名稱
type EconomyConfig struct {
	Backend          string `yaml:"backend"` // mock / redis / mysql
	CurrencySingular string `yaml:"currency_singular"`
	CurrencyPlural   string `yaml:"currency_plural"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// DemoConfig 伺服器啟動後的示範流程參數
type DemoConfig struct {
	Player        string  `yaml:"player"`
	DepositAmount float64 `yaml:"deposit_amount"`
}

// Load 讀取設定檔
// 優先讀取 config/config.yaml，然後使用環境變數覆蓋
func Load(configPath ...string) (*Config, error) {
	// 1. 決定設定檔路徑
	dir := "./config"
	if len(configPath) > 0 {
		dir = configPath[0]
	}
	fullPath := filepath.Join(dir, "config.yaml")

	var cfg Config

	// 2. 讀取 YAML 檔案
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %s: %w", fullPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml at %s: %w", fullPath, err)
	}

	// 3. 環境變數覆蓋 (Environment Variable Override)
	overrideWithEnv(&cfg)

	// 4. 缺省值
	if cfg.Economy.Backend == "" {
		cfg.Economy.Backend = BackendMock
	}
	if cfg.Economy.CurrencySingular == "" {
		cfg.Economy.CurrencySingular = "dollar"
	}
	if cfg.Economy.CurrencyPlural == "" {
		cfg.Economy.CurrencyPlural = "dollars"
	}

	return &cfg, nil
}

func overrideWithEnv(cfg *Config) {
	// App
	if env := os.Getenv(EnvAppEnv); env != "" {
		cfg.App.Env = env
	}

	// Economy
	if val := os.Getenv(EnvEconomyBackend); val != "" {
		cfg.Economy.Backend = val
	}

	// Redis
	if val := os.Getenv(EnvRedisAddr); val != "" {
		cfg.Redis.Addr = val
	}
	if val := os.Getenv(EnvRedisPassword); val != "" {
		cfg.Redis.Password = val
	}

	// MySQL
	if val := os.Getenv(EnvMySQLHost); val != "" {
		cfg.MySQL.Host = val
	}
	if val := os.Getenv(EnvMySQLUser); val != "" {
		cfg.MySQL.User = val
	}
	if val := os.Getenv(EnvMySQLPassword); val != "" {
		cfg.MySQL.Password = val
	}
	if val := os.Getenv(EnvMySQLDB); val != "" {
		cfg.MySQL.DBName = val
	}
	if val := os.Getenv(EnvMySQLPort); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			cfg.MySQL.Port = p
		}
	}

	// Demo
	if val := os.Getenv(EnvDemoPlayer); val != "" {
		cfg.Demo.Player = val
	}
}
