package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
)

// DataDirName holds local, uncommitted settings
const DataDirName = ".treb-dao"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		if projectRoot, err = FindProjectRoot(); err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	output := config.OutputFormat(strings.ToLower(v.GetString("output")))
	switch output {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
	default:
		return nil, fmt.Errorf("invalid output format %q, expected text, json or yaml", output)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:      projectRoot,
		DataDir:          filepath.Join(projectRoot, DataDirName),
		Debug:            v.GetBool("debug"),
		NonInteractive:   v.GetBool("non_interactive"),
		Output:           output,
		Timeout:          v.GetDuration("timeout"),
		FetchConcurrency: v.GetInt("fetch_concurrency"),
	}

	// Load .env files first for variable expansion
	loadEnvFiles(projectRoot)

	file, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	if file != nil {
		cfg.ConfigFile = filepath.Join(projectRoot, ProjectFileName)
		cfg.Wallet = file.Wallet
		if cfg.FetchConcurrency == 0 {
			cfg.FetchConcurrency = file.FetchConcurrency
		}
	}

	// Secrets come from the environment only
	if key := v.GetString("private_key"); key != "" {
		cfg.Wallet = config.WalletConfig{Type: config.WalletTypePrivateKey, PrivateKey: key}
	}
	cfg.Wallet.Passphrase = v.GetString("keystore_passphrase")

	// Resolve network if specified
	networkName := v.GetString("network")
	if networkName == "" && file != nil {
		networkName = file.Network
	}
	if networkName != "" {
		network, err := resolveNetwork(file, networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the first dao.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding dao.toml
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("TREB_DAO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("output", string(config.OutputText))
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("fetch_concurrency", 0)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}
