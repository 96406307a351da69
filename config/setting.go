package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required,min=1,max=65535"`
	Mode        string `koanf:"mode" validate:"required,oneof=debug release"`
	Concurrency int    `koanf:"concurrency" validate:"required,min=1"`
	BodyLimit   int    `koanf:"body_limit" validate:"required,min=1"`
	AppName     string `koanf:"app_name" validate:"required"`
	PublicURL   string `koanf:"public_url" validate:"required,url"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

type Module string

const (
	ModuleDatabase Module = "database"
	ModuleS3       Module = "s3"
	ModuleCors     Module = "cors"
	ModuleServer   Module = "server"
	ModuleSetting  Module = "setting"
	ModuleUpload   Module = "upload"
	ModuleExtract  Module = "extract"
	ModuleQuiz     Module = "quiz"
	ModuleArchive  Module = "archive"
)

type databaseConfig struct {
	Enabled      bool     `koanf:"enabled"`
	Host         string   `koanf:"host" validate:"required_if=Enabled true"`
	Port         int      `koanf:"port" validate:"required_if=Enabled true"`
	User         string   `koanf:"user" validate:"required_if=Enabled true"`
	Password     string   `koanf:"password"`
	Name         string   `koanf:"name" validate:"required_if=Enabled true"`
	MaxIdleConns int      `koanf:"max_idle_conns" validate:"min=0"`
	MaxOpenConns int      `koanf:"max_open_conns" validate:"min=0"`
	MaxLifetime  int      `koanf:"max_lifetime" validate:"min=0"`
	Replicas     []string `koanf:"replicas"`
}

type corsConfig struct {
	AllowOrigins []string `koanf:"allow_origins" validate:"required"`
	AllowMethods []string `koanf:"allow_methods" validate:"required"`
	AllowHeaders []string `koanf:"allow_headers" validate:"required"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type uploadConfig struct {
	MaxFileSize   int64    `koanf:"max_file_size" validate:"required,min=1"`
	AllowedTypes  []string `koanf:"allowed_types" validate:"required,min=1"`
	MinTextLength int      `koanf:"min_text_length" validate:"min=0"`
	TempDir       string   `koanf:"temp_dir"`
	Archive       bool     `koanf:"archive"`
}

type quizConfig struct {
	EarlyStop    int `koanf:"early_stop" validate:"required,min=1"`
	MaxQuestions int `koanf:"max_questions" validate:"required,min=1"`
	TimeoutMs    int `koanf:"timeout_ms" validate:"required,min=1"`
}

type config struct {
	Server   serverConfig   `koanf:"server"`
	Database databaseConfig `koanf:"database"`
	LogLevel logLevel       `koanf:"log_level" validate:"oneof=debug info warn error fatal panic"`
	Dns      string         `koanf:"dns"`
	S3       s3Config       `koanf:"s3"`
	Cors     corsConfig     `koanf:"cors"`
	Upload   uploadConfig   `koanf:"upload"`
	Quiz     quizConfig     `koanf:"quiz"`
}

// Document types accepted by the upload endpoint.
const (
	MimePDF  = "application/pdf"
	MimePPT  = "application/vnd.ms-powerpoint"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func buildMySQLDSN(cfg databaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

var defaultConfig = config{
	Server: serverConfig{
		Port:        8000,
		Mode:        "release",
		Concurrency: 256,
		BodyLimit:   25 * 1024 * 1024,
		AppName:     "quizgen",
		PublicURL:   "http://localhost:8000",
	},
	Database: databaseConfig{
		Enabled:      false,
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "",
		Name:         "quizgen",
		MaxIdleConns: 5,
		MaxOpenConns: 20,
		MaxLifetime:  30,
	},
	LogLevel: Info,
	S3: s3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		UseSSL:    false,
		Bucket:    "",
	},
	Cors: corsConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
	},
	Upload: uploadConfig{
		MaxFileSize:   20 * 1024 * 1024,
		AllowedTypes:  []string{MimePDF, MimePPT, MimePPTX, MimeDOC, MimeDOCX},
		MinTextLength: 50,
		TempDir:       "",
		Archive:       false,
	},
	Quiz: quizConfig{
		EarlyStop:    15,
		MaxQuestions: 10,
		TimeoutMs:    10000,
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

func init() {
	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	once.Do(func() {
		if err := Init(path); err != nil {
			log.Errorf("%v: %v", ModuleSetting, err)
		}
	})
}

var sections = map[string]bool{
	"server": true, "database": true, "s3": true, "cors": true, "upload": true, "quiz": true,
}

// envKey maps APP_UPLOAD_MAX_FILE_SIZE to upload.max_file_size. Keys outside a
// known section, such as APP_LOG_LEVEL, stay top level.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
	section, rest, ok := strings.Cut(key, "_")
	if ok && sections[section] {
		return section + "." + rest
	}
	return key
}

// Init loads defaults, the YAML file at path (optional), .env and APP_* environment
// variables into Cfg and validates the result. Cfg keeps whatever loaded even when
// validation fails.
func Init(path string) error {
	k := koanf.New(".")
	validate := validator.New()

	// defaults
	Cfg = defaultConfig

	// .env is optional
	if e := godotenv.Load(); e != nil && !errors.Is(e, fs.ErrNotExist) {
		log.Warnf("%v: failed to load .env: %v", ModuleSetting, e)
	}

	// file
	if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !errors.Is(e, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, e)
	}

	// env APP_SERVER_PORT
	if e := k.Load(env.Provider("APP_", ".", envKey), nil); e != nil {
		return fmt.Errorf("load env: %w", e)
	}

	// bind
	if e := k.Unmarshal("", &Cfg); e != nil {
		return fmt.Errorf("unmarshal config: %w", e)
	}

	if Cfg.Dns == "" {
		Cfg.Dns = buildMySQLDSN(Cfg.Database)
	}

	// validate config
	if err := validate.Struct(Cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var sb strings.Builder
			sb.WriteString(fmt.Sprintf("%v Config validation failed:\n", ModuleSetting))
			for _, e := range errs {
				sb.WriteString(
					fmt.Sprintf("  • %s: failed '%s' (value: %v)\n", e.Namespace(), e.Tag(), e.Value()),
				)
			}
			return errors.New(sb.String())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
