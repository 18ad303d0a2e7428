package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		Port     string `yaml:"port"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Auth struct {
		Secret  string `yaml:"secret"`
		ExpHour int    `yaml:"exp_hour"`
	} `yaml:"auth"`
	HuggingFace struct {
		APIKey          string  `yaml:"api_key"`
		Model           string  `yaml:"model"`
		BaseURL         string  `yaml:"base_url"`
		MaxTokens       int     `yaml:"max_tokens"`
		Temperature     float64 `yaml:"temperature"`
		TopP            float64 `yaml:"top_p"`
		TimeoutSeconds  int     `yaml:"timeout_seconds"`
		RetryWaitCapSec int     `yaml:"retry_wait_cap_seconds"`
	} `yaml:"huggingface"`
	Chat struct {
		DailyQuestionLimit int `yaml:"daily_question_limit"`
		MaxContextChars    int `yaml:"max_context_chars"`
		RetrievalLimit     int `yaml:"retrieval_limit"`
	} `yaml:"chat"`
	Server struct {
		Port int    `yaml:"port"`
		Mode string `yaml:"mode"` // "dev" or "prod", controls logger output
	} `yaml:"server"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig Config

// DSN generates the PostgreSQL DSN from database config
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

// LoadConfig reads and parses the YAML configuration file into GlobalConfig
func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		return err
	}

	// Validate required fields
	if GlobalConfig.Database.Host == "" {
		log.Fatal("database.host is required in config.yaml")
	}
	if GlobalConfig.Database.User == "" {
		log.Fatal("database.user is required in config.yaml")
	}
	if GlobalConfig.Database.Password == "" {
		log.Fatal("database.password is required in config.yaml")
	}
	if GlobalConfig.Database.DBName == "" {
		log.Fatal("database.dbname is required in config.yaml")
	}
	if GlobalConfig.Database.Port == "" {
		log.Fatal("database.port is required in config.yaml")
	}
	if GlobalConfig.Database.SSLMode == "" {
		log.Fatal("database.sslmode is required in config.yaml")
	}
	if GlobalConfig.Auth.Secret == "" {
		log.Fatal("auth.secret is required in config.yaml")
	}
	if GlobalConfig.HuggingFace.APIKey == "" {
		log.Fatal("huggingface.api_key is required in config.yaml")
	}
	if GlobalConfig.Server.Port == 0 {
		log.Fatal("server.port is required in config.yaml")
	}
	if GlobalConfig.Server.Port < 1 || GlobalConfig.Server.Port > 65535 {
		log.Fatal("server.port must be between 1 and 65535")
	}

	// Defaults for optional fields
	if GlobalConfig.Auth.ExpHour == 0 {
		GlobalConfig.Auth.ExpHour = 24
	}
	if GlobalConfig.HuggingFace.Model == "" {
		GlobalConfig.HuggingFace.Model = "ibm-granite/granite-3.3-2b-instruct"
	}
	if GlobalConfig.HuggingFace.BaseURL == "" {
		GlobalConfig.HuggingFace.BaseURL = "https://api-inference.huggingface.co/models/" + GlobalConfig.HuggingFace.Model
	}
	if GlobalConfig.HuggingFace.MaxTokens == 0 {
		GlobalConfig.HuggingFace.MaxTokens = 512
	}
	if GlobalConfig.HuggingFace.Temperature == 0 {
		GlobalConfig.HuggingFace.Temperature = 0.7
	}
	if GlobalConfig.HuggingFace.TopP == 0 {
		GlobalConfig.HuggingFace.TopP = 0.9
	}
	if GlobalConfig.HuggingFace.TimeoutSeconds == 0 {
		GlobalConfig.HuggingFace.TimeoutSeconds = 30
	}
	if GlobalConfig.HuggingFace.RetryWaitCapSec == 0 {
		GlobalConfig.HuggingFace.RetryWaitCapSec = 5
	}
	if GlobalConfig.Chat.DailyQuestionLimit == 0 {
		GlobalConfig.Chat.DailyQuestionLimit = 50
	}
	if GlobalConfig.Chat.MaxContextChars == 0 {
		GlobalConfig.Chat.MaxContextChars = 2000
	}
	if GlobalConfig.Chat.RetrievalLimit == 0 {
		GlobalConfig.Chat.RetrievalLimit = 5
	}

	return nil
}
