package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mkoehler/immo-inspect/user"
)

// Config holds the API server settings.
type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	UploadDir    string
}

// ClientConfig holds the settings of the inspect client binary, which
// edits checklists against the local state store or a remote server.
type ClientConfig struct {
	User          string
	ObjectID      string
	StorageMode   string
	RemoteBaseURL string
	StatePath     string
}

// ParseFlags validates flags and fills the server configuration. A .env
// file in the working directory is loaded first; CLI flags override env
// variables.
func ParseFlags(args []string) (Config, error) {
	// Best-effort; a missing .env is fine
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("immo-inspect", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.UploadDir, "u", "", "Upload directory")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3001 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:immo-inspect.db"
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = os.Getenv("UPLOAD_DIR")
		if cfg.UploadDir == "" {
			cfg.UploadDir = "uploads"
		}
	}

	return cfg, nil
}

// ParseClientFlags validates flags and fills the client configuration.
// The remaining positional arguments (the command and its operands) are
// returned alongside. Storage settings fall back to the same env
// variables the .env file can provide.
func ParseClientFlags(args []string) (ClientConfig, []string, error) {
	_ = godotenv.Load()

	var cfg ClientConfig

	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)

	fs.StringVar(&cfg.User, "user", "", "Inspector display name")
	fs.StringVar(&cfg.ObjectID, "o", "", "Property object id")
	fs.StringVar(&cfg.StorageMode, "m", "", "Answer storage mode (local or remote)")
	fs.StringVar(&cfg.RemoteBaseURL, "r", "", "Remote answer storage base URL")
	fs.StringVar(&cfg.StatePath, "s", "", "Local state database path")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, nil, err
	}

	if err := user.Validate(cfg.User); err != nil {
		return ClientConfig{}, nil, fmt.Errorf("-user: %w", err)
	}
	if cfg.ObjectID == "" {
		return ClientConfig{}, nil, errors.New("object id is required (use -o)")
	}

	if cfg.StorageMode == "" {
		cfg.StorageMode = os.Getenv("STORAGE_MODE")
		if cfg.StorageMode == "" {
			cfg.StorageMode = "local"
		}
	}
	if cfg.StorageMode != "local" && cfg.StorageMode != "remote" {
		return ClientConfig{}, nil, errors.New("storage mode must be local or remote")
	}

	if cfg.RemoteBaseURL == "" {
		cfg.RemoteBaseURL = os.Getenv("REMOTE_BASE_URL")
	}
	if cfg.StorageMode == "remote" && cfg.RemoteBaseURL == "" {
		return ClientConfig{}, nil, errors.New("remote storage mode requires -r or REMOTE_BASE_URL env")
	}

	if cfg.StatePath == "" {
		cfg.StatePath = os.Getenv("STATE_PATH")
		if cfg.StatePath == "" {
			cfg.StatePath = "immo-inspect-state.db"
		}
	}

	return cfg, fs.Args(), nil
}
