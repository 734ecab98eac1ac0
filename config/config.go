package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Data     DataConfig     `yaml:"data"`
	Matcher  MatcherConfig  `yaml:"matcher"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

// MatcherConfig 模糊匹配配置
type MatcherConfig struct {
	Algorithm string `yaml:"algorithm"` // weighted, levenshtein, token-sort, jaro-winkler
	Threshold int    `yaml:"threshold"` // 分数必须严格大于该值才算命中
}

// DefaultFallback 未命中时的固定回复
const DefaultFallback = "I'm not sure how to respond to that. Can you provide more details?"

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

// Default 返回内置默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/chatbot.db",
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Matcher: MatcherConfig{
			Algorithm: "weighted",
			Threshold: 60,
		},
	}
}

func loadConfig() *Config {
	config := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			klog.Warningf("解析配置文件 %s 失败，使用默认配置: %v", configPath, err)
		}
	}

	applyEnv(config)
	return config
}

// applyEnv 环境变量优先级高于配置文件
func applyEnv(config *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
		if os.Getenv("DB_DSN") == "" && config.Database.Type == "sqlite" {
			config.Database.DSN = filepath.Join(dataDir, "chatbot.db")
		}
	}

	if algorithm := os.Getenv("MATCH_ALGORITHM"); algorithm != "" {
		config.Matcher.Algorithm = algorithm
	}
	if threshold := os.Getenv("MATCH_THRESHOLD"); threshold != "" {
		if v, err := strconv.Atoi(threshold); err == nil {
			config.Matcher.Threshold = v
		} else {
			klog.Warningf("MATCH_THRESHOLD=%q 不是整数，忽略", threshold)
		}
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func UpdateConfig(newCfg *Config) {
	cfg = newCfg
}
