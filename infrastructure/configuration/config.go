package configuration

import (
	"fmt"
	"os"
	"strconv"

	"instagram-gateway/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Graph       Graph       `json:"graph"`
	TokenStore  TokenStore  `json:"tokenStore"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

// Graph holds the Instagram Graph API and OAuth client settings.
type Graph struct {
	Version      string `json:"version"`
	BaseURL      string `json:"baseURL"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
	Scopes       string `json:"scopes"`
	// Optional explicit identifiers, skipping auto-detection.
	InstagramUserID string `json:"instagramUserId"`
	FacebookPageID  string `json:"facebookPageId"`
}

// TokenStore locates the persisted token file.
type TokenStore struct {
	Dir  string `json:"dir"`
	File string `json:"file"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	Queue     string `json:"queue"`
}

type Logger struct {
	Format string `json:"format"`
}

const (
	defaultGraphVersion = "v21.0"
	defaultRedirectURI  = "http://localhost:8080/callback"
	defaultScopes       = "instagram_basic,instagram_content_publish,instagram_manage_comments,instagram_manage_insights,pages_show_list,pages_read_engagement,pages_messaging,instagram_manage_messages"
)

var C Config

func init() {
	LoadConfig()
	initGraph(&C)
	initApp(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// initGraph layers environment overrides over the config file. The env names
// match the operator-facing setup docs.
func initGraph(C *Config) {
	if v := os.Getenv("INSTAGRAM_GRAPH_API_VERSION"); v != "" {
		C.Graph.Version = v
	}
	if C.Graph.Version == "" {
		C.Graph.Version = defaultGraphVersion
	}
	if v := os.Getenv("INSTAGRAM_GRAPH_BASE_URL"); v != "" {
		C.Graph.BaseURL = v
	}
	if C.Graph.BaseURL == "" {
		C.Graph.BaseURL = "https://graph.facebook.com"
	}
	if v := os.Getenv("OAUTH2_CLIENT_ID"); v != "" {
		C.Graph.ClientID = v
	}
	if v := os.Getenv("OAUTH2_CLIENT_SECRET"); v != "" {
		C.Graph.ClientSecret = v
	}
	if v := os.Getenv("OAUTH2_REDIRECT_URI"); v != "" {
		C.Graph.RedirectURI = v
	}
	if C.Graph.RedirectURI == "" {
		C.Graph.RedirectURI = defaultRedirectURI
	}
	if v := os.Getenv("OAUTH2_SCOPES"); v != "" {
		C.Graph.Scopes = v
	}
	if C.Graph.Scopes == "" {
		C.Graph.Scopes = defaultScopes
	}
	if v := os.Getenv("INSTAGRAM_USER_ID"); v != "" {
		C.Graph.InstagramUserID = v
	}
	if v := os.Getenv("FACEBOOK_PAGE_ID"); v != "" {
		C.Graph.FacebookPageID = v
	}
	if v := os.Getenv("INSTAGRAM_TOKEN_DIR"); v != "" {
		C.TokenStore.Dir = v
	}
	if C.TokenStore.File == "" {
		C.TokenStore.File = ".instagram_tokens.json"
	}

	// Optional Postgres token store via env (production deployments).
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
}

func initApp(C *Config) {
	// Prefer SECRET_KEY from environment; overrides config file when provided.
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10090
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10090
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; tool API authentication is disabled.")
	}
}
