package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderWatson = "watson"
	ProviderArk    = "ark"

	DefaultWatsonURL     = "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"
	DefaultWatsonModelID = "emotion_aggregated-workflow_lang_en_stock"
	DefaultTimeout       = 10 * time.Second
)

var (
	ErrInvalidPort     = errors.New("invalid PORT value")
	ErrUnknownProvider = errors.New("unknown emotion provider")
	ErrInvalidBaseURL  = errors.New("invalid emotion provider base url")
	ErrInvalidTimeout  = errors.New("emotion provider timeout must be positive")
	ErrArkCredentials  = errors.New("ark provider requires ARK_MODEL and ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY")
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Ark      ArkConfig
	Log      LogConfig
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// ProviderConfig describes the remote emotion-prediction endpoint.
type ProviderConfig struct {
	Name    string
	BaseURL string
	ModelID string
	APIKey  string
	Timeout time.Duration
}

// ArkConfig 描述大模型相关配置，仅在 EMOTION_PROVIDER=ark 时使用。
type ArkConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// LoadDotEnv loads .env into the process environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	return LoadFrom(NewViper())
}

// NewViper returns a viper instance bound to the process environment with defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("EMOTION_PROVIDER", ProviderWatson)
	v.SetDefault("EMOTION_BASE_URL", DefaultWatsonURL)
	v.SetDefault("EMOTION_MODEL_ID", DefaultWatsonModelID)
	v.SetDefault("EMOTION_TIMEOUT", int(DefaultTimeout/time.Second))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("ARK_REGION", "cn-beijing")
	return v
}

// LoadFrom builds the configuration from an already prepared viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	server, err := loadServerConfig(v)
	if err != nil {
		return nil, err
	}

	provider, err := loadProviderConfig(v)
	if err != nil {
		return nil, err
	}

	arkCfg, err := loadArkConfig(v)
	if err != nil {
		return nil, err
	}
	if provider.Name == ProviderArk && !arkCfg.Enabled() {
		return nil, ErrArkCredentials
	}

	return &Config{
		Server:   server,
		Provider: provider,
		Ark:      arkCfg,
		Log: LogConfig{
			Level:  strings.ToLower(getString(v, "LOG_LEVEL")),
			Format: strings.ToLower(getString(v, "LOG_FORMAT")),
		},
	}, nil
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig(v *viper.Viper) (ServerConfig, error) {
	port := getString(v, "PORT")
	if port == "" {
		port = "5000"
	}

	addr := port
	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":5000" 或 "127.0.0.1:5000"。
		_, p, err := net.SplitHostPort(port)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%w: %q", ErrInvalidPort, port)
		}
		port = p
	} else {
		addr = ":" + port
	}

	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return ServerConfig{}, fmt.Errorf("%w: %q", ErrInvalidPort, addr)
	}

	return ServerConfig{Addr: addr}, nil
}

func loadProviderConfig(v *viper.Viper) (ProviderConfig, error) {
	name := strings.ToLower(getString(v, "EMOTION_PROVIDER"))
	switch name {
	case ProviderWatson, ProviderArk:
	default:
		return ProviderConfig{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	baseURL := getString(v, "EMOTION_BASE_URL")
	if name == ProviderWatson {
		u, err := url.Parse(baseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ProviderConfig{}, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
		}
	}

	raw := getString(v, "EMOTION_TIMEOUT")
	seconds := v.GetInt("EMOTION_TIMEOUT")
	if seconds <= 0 {
		return ProviderConfig{}, fmt.Errorf("%w: %q", ErrInvalidTimeout, raw)
	}

	return ProviderConfig{
		Name:    name,
		BaseURL: baseURL,
		ModelID: getString(v, "EMOTION_MODEL_ID"),
		APIKey:  getString(v, "EMOTION_API_KEY"),
		Timeout: time.Duration(seconds) * time.Second,
	}, nil
}

func loadArkConfig(v *viper.Viper) (ArkConfig, error) {
	var temperature *float64
	if raw := getString(v, "ARK_TEMPERATURE"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ArkConfig{}, fmt.Errorf("invalid ARK_TEMPERATURE value %q: %w", raw, err)
		}
		temperature = &val
	}

	return ArkConfig{
		APIKey:      getString(v, "ARK_API_KEY"),
		AccessKey:   getString(v, "ARK_ACCESS_KEY"),
		SecretKey:   getString(v, "ARK_SECRET_KEY"),
		Model:       getString(v, "ARK_MODEL"),
		BaseURL:     getString(v, "ARK_BASE_URL"),
		Region:      getString(v, "ARK_REGION"),
		Temperature: temperature,
	}, nil
}

// Enabled 表示是否提供了必需的密钥。
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c ArkConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, ErrArkCredentials
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func getString(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
