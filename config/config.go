package config

import (
	"fmt"
	"nhbridge/crypto"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the bridge node's on-disk configuration: where its state lives,
// the keystore file holding the validator key it signs attestations with,
// and the genesis authority set the bridge module seeds its authority
// registry from.
type Config struct {
	DataDir               string   `toml:"DataDir"`
	ValidatorKeystorePath string   `toml:"ValidatorKeystorePath"`
	GenesisAuthorities    []string `toml:"GenesisAuthorities"`
}

// options holds the load-time settings that must not be persisted to disk,
// chiefly the keystore passphrase.
type options struct {
	passphrase string
}

// Option configures a Load call.
type Option func(*options)

// WithKeystorePassphrase supplies the passphrase used to encrypt a validator
// keystore that Load provisions. Load does not decrypt an existing keystore;
// LoadValidatorKey takes its passphrase as an argument.
func WithKeystorePassphrase(passphrase string) Option {
	return func(o *options) { o.passphrase = passphrase }
}

// Load loads the configuration from the given path. A missing config file is
// created with defaults and a fresh validator keystore; a loaded config with
// no ValidatorKeystorePath gets a fresh keystore and is rewritten. A
// configured keystore path whose file is missing is not re-provisioned.
func Load(path string, opts ...Option) (*Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path, o)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if cfg.ValidatorKeystorePath == "" {
		if err := provisionValidatorKeystore(cfg, filepath.Join(filepath.Dir(path), "validator.keystore"), o); err != nil {
			return nil, err
		}

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, os.ModePerm)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// createDefault creates and saves a default configuration file, provisioning
// a validator keystore alongside it.
func createDefault(path string, o *options) (*Config, error) {
	cfg := &Config{
		DataDir:            "./bridge-data",
		GenesisAuthorities: []string{},
	}
	if err := provisionValidatorKeystore(cfg, filepath.Join(filepath.Dir(path), "validator.keystore"), o); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// provisionValidatorKeystore generates a fresh validator key and writes it to
// an encrypted keystore file at keystorePath, recording the path on cfg.
func provisionValidatorKeystore(cfg *Config, keystorePath string, o *options) error {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return err
	}
	if err := crypto.SaveToKeystore(keystorePath, key, o.passphrase); err != nil {
		return fmt.Errorf("config: provision validator keystore: %w", err)
	}
	cfg.ValidatorKeystorePath = keystorePath
	return nil
}

// LoadValidatorKey decrypts the configured validator keystore using
// passphrase.
func (c *Config) LoadValidatorKey(passphrase string) (*crypto.PrivateKey, error) {
	if c.ValidatorKeystorePath == "" {
		return nil, fmt.Errorf("config: validator keystore path not configured")
	}
	return crypto.LoadFromKeystore(c.ValidatorKeystorePath, passphrase)
}
