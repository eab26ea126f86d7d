package configuration

import (
	"fmt"
	"os"
	"strconv"

	"photo-frame/infrastructure/logger"

	"github.com/spf13/viper"
)

// DevSecretKey signs session cookies when PHOTO_FRAME_SECRET_KEY is not set. Development only.
const DevSecretKey = "dev-secret-key"

type Config struct {
	App     App     `json:"app"`
	Photos  Photos  `json:"photos"`
	Frame   Frame   `json:"frame"`
	Display Display `json:"display"`
	Redis   Redis   `json:"redis"`
}

type App struct {
	Port        int      `json:"port"`
	SecretKey   string   `json:"secretKey"`
	CorsOrigins []string `json:"corsOrigins"`
	// OAuthStateTTLSeconds bounds a pending authorization; 0 never expires it
	OAuthStateTTLSeconds int `json:"oauthStateTTLSeconds"`
}

type Photos struct {
	ClientSecretFile string   `json:"clientSecretFile"`
	TokenFile        string   `json:"tokenFile"`
	DownloadDir      string   `json:"downloadDir"`
	FetchCount       int      `json:"fetchCount"`
	Scopes           []string `json:"scopes"`
	APIEndpoint      string   `json:"apiEndpoint"`
}

type Frame struct {
	IntervalSeconds int `json:"intervalSeconds"`
	WaitSeconds     int `json:"waitSeconds"`
}

type Display struct {
	Disabled       bool   `json:"disabled"`
	SPIPort        string `json:"spiPort"`
	QRMargin       int    `json:"qrMargin"`
	QRDebugFile    string `json:"qrDebugFile"`
	PhotoDebugFile string `json:"photoDebugFile"`
}

type Redis struct {
	Addr     string `json:"addr"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

var C Config

func init() {
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
}

func LoadConfig() {
	v := viper.New()
	setDefaults(v)
	name := getConfig()
	v.SetConfigName(name)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("../../")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().WithField("config", name).Debug("Config file not found, using defaults")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	applyEnv(&c)
	C = c
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.secretKey", DevSecretKey)
	v.SetDefault("app.oauthStateTTLSeconds", 0)
	v.SetDefault("photos.clientSecretFile", "client_secret.json")
	v.SetDefault("photos.tokenFile", "token.json")
	v.SetDefault("photos.downloadDir", "photos")
	v.SetDefault("photos.fetchCount", 1)
	v.SetDefault("photos.scopes", []string{PhotosLibraryReadonlyScope})
	v.SetDefault("photos.apiEndpoint", PhotosLibraryEndpoint)
	v.SetDefault("frame.intervalSeconds", 3600)
	v.SetDefault("frame.waitSeconds", 5)
	v.SetDefault("display.qrMargin", 20)
	v.SetDefault("display.qrDebugFile", "qr.png")
	v.SetDefault("display.photoDebugFile", "latest_display.png")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// applyEnv lets the environment override the config file
func applyEnv(c *Config) {
	if v := os.Getenv("PHOTO_FRAME_SECRET_KEY"); v != "" {
		c.App.SecretKey = v
	}
	// Port resolution order: APP_PORT -> PORT -> config -> default
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET_FILE"); v != "" {
		c.Photos.ClientSecretFile = v
	}
	if v := os.Getenv("PHOTO_FRAME_TOKEN_FILE"); v != "" {
		c.Photos.TokenFile = v
	}
	if v := os.Getenv("PHOTO_FRAME_DOWNLOAD_DIR"); v != "" {
		c.Photos.DownloadDir = v
	}
	if v := os.Getenv("PHOTO_FRAME_INTERVAL_SECONDS"); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			c.Frame.IntervalSeconds = s
		}
	}
	switch os.Getenv("PHOTO_FRAME_NO_PANEL") {
	case "1", "true", "TRUE", "True":
		c.Display.Disabled = true
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if c.Photos.FetchCount <= 0 {
		c.Photos.FetchCount = 1
	}
	if c.App.SecretKey == DevSecretKey {
		logger.GetLogger().Warn("PHOTO_FRAME_SECRET_KEY not set; using the insecure development session secret")
	}
}
