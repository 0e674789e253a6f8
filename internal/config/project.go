package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
)

// ProjectFileName is the project configuration file looked up from the
// working directory upwards
const ProjectFileName = "dao.toml"

// ProjectFile represents the raw dao.toml structure
type ProjectFile struct {
	// Network is used when --network is not given
	Network          string                 `toml:"network"`
	FetchConcurrency int                    `toml:"fetch_concurrency"`
	Networks         map[string]NetworkTOML `toml:"networks"`
	Wallet           config.WalletConfig    `toml:"wallet"`
}

// NetworkTOML is one [networks.<name>] table
type NetworkTOML struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id"`
	ExplorerURL string `toml:"explorer_url"`
	DAO         string `toml:"dao"`
	NFT         string `toml:"nft"`
	Marketplace string `toml:"marketplace"`
}

// loadEnvFiles loads .env and .env.local from the project root. Variables
// already set in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectFile loads and parses dao.toml if it exists.
// Returns (nil, nil) when dao.toml does not exist.
func loadProjectFile(projectRoot string) (*ProjectFile, error) {
	path := filepath.Join(projectRoot, ProjectFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var file ProjectFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	// Expand environment variables in all string fields
	file.Network = os.ExpandEnv(file.Network)
	for name, n := range file.Networks {
		n.RPCURL = os.ExpandEnv(n.RPCURL)
		n.ExplorerURL = os.ExpandEnv(n.ExplorerURL)
		n.DAO = os.ExpandEnv(n.DAO)
		n.NFT = os.ExpandEnv(n.NFT)
		n.Marketplace = os.ExpandEnv(n.Marketplace)
		file.Networks[name] = n
	}
	file.Wallet.Type = config.WalletType(os.ExpandEnv(string(file.Wallet.Type)))
	file.Wallet.KeystoreDir = os.ExpandEnv(file.Wallet.KeystoreDir)
	file.Wallet.Account = os.ExpandEnv(file.Wallet.Account)
	file.Wallet.PrivateKey = os.ExpandEnv(file.Wallet.PrivateKey)

	return &file, nil
}
