package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf is the ambient application configuration; loaded once at startup.
var Conf *Config

type (
	ServerConfig struct {
		Host                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		URI     string
		Name    string
		Timeout time.Duration
	}

	UploadConfig struct {
		ImageKitPublicKey  string
		ImageKitPrivateKey string
		ImageKitEndpoint   string
		Folder             string
		MaxSizeMB          int
		TokenTTL           time.Duration
	}

	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		Build    string

		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		WorkDir          string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string
		LeaderboardLimit int

		Server   ServerConfig
		Database DatabaseConfig
		Upload   UploadConfig
	}
)

func init() {
	Conf = loadConfig()
}

func loadConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "OSAtria")
	v.SetDefault("secretKey", "k2$e(y4h^dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "opensource@atria.edu")
	v.SetDefault("leaderboardLimit", 100)
	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "osatria")
	v.SetDefault("database.timeout", 10*time.Second)
	v.SetDefault("upload.folder", "/osatria/forms")
	v.SetDefault("upload.maxSizeMB", 10)
	v.SetDefault("upload.tokenTTL", 30*time.Minute)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		WorkDir:          wd,
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		LeaderboardLimit: v.GetInt("leaderboardLimit"),
		Server: ServerConfig{
			Host:                      v.GetString("server.host"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
		},
		Database: DatabaseConfig{
			URI:     v.GetString("database.uri"),
			Name:    v.GetString("database.name"),
			Timeout: v.GetDuration("database.timeout"),
		},
		Upload: UploadConfig{
			ImageKitPublicKey:  v.GetString("upload.imagekitPublicKey"),
			ImageKitPrivateKey: v.GetString("upload.imagekitPrivateKey"),
			ImageKitEndpoint:   v.GetString("upload.imagekitEndpoint"),
			Folder:             v.GetString("upload.folder"),
			MaxSizeMB:          v.GetInt("upload.maxSizeMB"),
			TokenTTL:           v.GetDuration("upload.tokenTTL"),
		},
	}
}
