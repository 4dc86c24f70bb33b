package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// UploadURL is the loan application test-upload endpoint of the local dev server.
	UploadURL = "http://localhost:3000/api/test-upload"
	// MaxImageSize is the largest sample image (in bytes) the tester will pick up from the downloads directory.
	MaxImageSize int64 = 5 * 1024 * 1024
	// PlaceholderName is the file the tester writes when it has to synthesize an image.
	PlaceholderName = "test_document.jpg"
)

// TesterConfig holds settings for the upload smoke test.
type TesterConfig struct {
	DownloadsDir string
	// Synthesize selects the placeholder image capability. When false the tester
	// falls back to any image-like file in DownloadsDir regardless of size.
	Synthesize bool
	WorkDir    string
}

// LogConfig holds logger settings shared by both binaries.
type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StubConfig configures the local stand-in of the test-upload endpoint.
type StubConfig struct {
	Port      string
	AuthToken string
	// Storage is either "memory" or "minio".
	Storage  string
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables; a .env file is picked up by
// importing _ "github.com/joho/godotenv/autoload" in main.
type AppConfig struct {
	Tester TesterConfig
	Stub   StubConfig
	Log    LogConfig
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() *AppConfig {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &AppConfig{
		Tester: TesterConfig{
			DownloadsDir: v.GetString("UPLOAD_TEST_DOWNLOADS_DIR"),
			Synthesize:   v.GetBool("UPLOAD_TEST_SYNTHESIZE"),
			WorkDir:      v.GetString("UPLOAD_TEST_WORK_DIR"),
		},
		Stub: StubConfig{
			Port:      v.GetString("PORT"),
			AuthToken: v.GetString("STUB_AUTH_TOKEN"),
			Storage:   v.GetString("STUB_STORAGE"),
			Database: DatabaseConfig{
				Host:               v.GetString("DB_HOST"),
				Port:               v.GetString("DB_PORT"),
				User:               v.GetString("DB_USER"),
				Password:           v.GetString("DB_PASSWORD"),
				Name:               v.GetString("DB_NAME"),
				SSLMode:            v.GetString("DB_SSLMODE"),
				MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
				MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
				ConnMaxLifetimeSec: v.GetInt("DB_CONN_MAX_LIFETIME_SEC"),
			},
			MinIO: MinIOConfig{
				Endpoint:  v.GetString("MINIO_ENDPOINT"),
				AccessKey: v.GetString("MINIO_ACCESS_KEY"),
				SecretKey: v.GetString("MINIO_SECRET_KEY"),
				Bucket:    v.GetString("MINIO_BUCKET"),
				UseSSL:    v.GetBool("MINIO_USE_SSL"),
			},
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("UPLOAD_TEST_DOWNLOADS_DIR", defaultDownloadsDir())
	v.SetDefault("UPLOAD_TEST_SYNTHESIZE", true)
	v.SetDefault("UPLOAD_TEST_WORK_DIR", ".")

	v.SetDefault("PORT", "3000")
	v.SetDefault("STUB_AUTH_TOKEN", "")
	v.SetDefault("STUB_STORAGE", "memory")

	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_SEC", 300)

	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "")
	v.SetDefault("MINIO_USE_SSL", false)

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")
}

// defaultDownloadsDir mirrors "~/Downloads"; it degrades to a relative path when
// the home directory cannot be resolved.
func defaultDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Downloads"
	}
	return filepath.Join(home, "Downloads")
}
