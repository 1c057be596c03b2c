package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	Seed               bool
	LogLevel           string
}

// Campus 平台的校内规则：邮箱后缀白名单 + 注册发放的初始积分。
type Campus struct {
	EmailDomain   string `mapstructure:"emailDomain"`
	InitialPoints int    `mapstructure:"initialPoints"`
}

// AI 外部文本生成服务。APIKey 为空时所有 AI 功能直接走本地 fallback。
type AI struct {
	BaseURL   string `mapstructure:"baseURL"`
	APIKey    string `mapstructure:"apiKey"`
	Model     string `mapstructure:"model"`
	TimeoutMs int    `mapstructure:"timeoutMs"`
	MaxTokens int    `mapstructure:"maxTokens"`
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis  `mapstructure:"redis"`
	Campus Campus `mapstructure:"campus"`
	AI     AI     `mapstructure:"ai"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Campus.EmailDomain == "" {
		c.Campus.EmailDomain = "@krce.ac.in"
	}
	if c.Campus.InitialPoints == 0 {
		c.Campus.InitialPoints = 10
	}
	if c.AI.TimeoutMs <= 0 {
		c.AI.TimeoutMs = 4000
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = 300
	}
}
