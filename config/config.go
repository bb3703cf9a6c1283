package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// 默认上游接口地址
const DefaultUpstreamBaseURL = "http://64.227.89.151/api/douyin/web"

var cfg *Config

func Get() *Config {
	return cfg
}

type Config struct {
	AppName      string `mapstructure:"app_name"`
	DefaultPort  int    `mapstructure:"default_port"`
	UserDataDir  string `mapstructure:"user_data_dir"`
	DatabasePath string `mapstructure:"database_path"`

	Upstream struct {
		BaseURL    string `mapstructure:"base_url"`
		TimeoutSec int    `mapstructure:"timeout_sec"`
	} `mapstructure:"upstream"`

	Proxy struct {
		TimeoutSec int `mapstructure:"timeout_sec"`
	} `mapstructure:"proxy"`

	// 访问密码，仅做客户端门禁
	Auth struct {
		Password string `mapstructure:"password"`
	} `mapstructure:"auth"`

	Download struct {
		OutputDir string `mapstructure:"output_dir"`
	} `mapstructure:"download"`

	Logging struct {
		LogFile    string `mapstructure:"log_file"`
		LogLevel   string `mapstructure:"log_level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"logging"`
}

// 路径规范化：变量替换、~ 展开、相对路径转绝对路径
func normalizePath(v *viper.Viper, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.Contains(path, "{{user_data_dir}}") {
		userDataDir, _ := normalizePath(v, v.GetString("user_data_dir"))
		path = strings.ReplaceAll(path, "{{user_data_dir}}", userDataDir)
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			wd, _ := os.Getwd()
			home = wd
		}
		path = filepath.Join(home, path[1:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve relative path %s: %w", path, err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func ensureDir(path string) error {
	if path == "" {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

func setDefaults(v *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		wd, _ := os.Getwd()
		homeDir = wd
	}

	v.SetDefault("app_name", "DouyinDownloader")
	v.SetDefault("default_port", 3000)
	v.SetDefault("user_data_dir", filepath.Join(homeDir, ".douyin-downloader"))
	v.SetDefault("database_path", "{{user_data_dir}}/storage.db")

	v.SetDefault("upstream.base_url", DefaultUpstreamBaseURL)
	v.SetDefault("upstream.timeout_sec", 0)
	v.SetDefault("proxy.timeout_sec", 0)
	v.SetDefault("auth.password", "123456")
	v.SetDefault("download.output_dir", "{{user_data_dir}}/downloads")

	v.SetDefault("logging.log_file", "{{user_data_dir}}/logs/app.log")
	v.SetDefault("logging.log_level", "info")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
}

// LoadConfig 读取 config.yaml（当前目录或 ./config），叠加环境变量后写入全局配置。
// configFile 非空时只读取该文件。
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 环境变量覆盖，例如 UPSTREAM_BASE_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configObj Config
	if err := v.Unmarshal(&configObj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	pathsToNormalize := []*string{
		&configObj.UserDataDir,
		&configObj.DatabasePath,
		&configObj.Download.OutputDir,
		&configObj.Logging.LogFile,
	}
	for _, pathPtr := range pathsToNormalize {
		normalized, err := normalizePath(v, *pathPtr)
		if err != nil {
			return nil, fmt.Errorf("path normalization error: %w", err)
		}
		*pathPtr = normalized
	}

	configObj.Upstream.BaseURL = strings.TrimRight(configObj.Upstream.BaseURL, "/")
	if configObj.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream.base_url must not be empty")
	}

	if err := ensureDir(configObj.UserDataDir); err != nil {
		return nil, fmt.Errorf("failed to create user data dir: %w", err)
	}
	if err := ensureDir(filepath.Dir(configObj.DatabasePath)); err != nil {
		return nil, fmt.Errorf("failed to create database dir: %w", err)
	}

	cfg = &configObj
	return cfg, nil
}
