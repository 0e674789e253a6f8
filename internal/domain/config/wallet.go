package config

// WalletType selects the wallet adapter
type WalletType string

const (
	WalletTypeNone       WalletType = ""
	WalletTypeKeystore   WalletType = "keystore"
	WalletTypePrivateKey WalletType = "private_key"
)

// WalletConfig describes where the signing account comes from
type WalletConfig struct {
	Type WalletType `toml:"type" json:"type"`

	// keystore
	KeystoreDir string `toml:"keystore_dir" json:"keystoreDir,omitempty"`
	Account     string `toml:"account" json:"account,omitempty"`
	Passphrase  string `toml:"-" json:"-"`

	// private_key
	PrivateKey string `toml:"private_key" json:"-"`
}
