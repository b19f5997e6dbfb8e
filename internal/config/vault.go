package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"resumeradar/internal/errors"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds Vault connection configuration
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"tokenFile"`
	Namespace string `mapstructure:"namespace"`

	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets names the KVv2 paths read at startup. Empty paths are skipped
type VaultSecrets struct {
	APIKeys   string `mapstructure:"apiKeys"`   // key "keys": comma-separated server API keys
	TLSCerts  string `mapstructure:"tlsCerts"`  // keys "cert", "key", "ca": PEM content
	TrendFeed string `mapstructure:"trendFeed"` // key "token": bearer token for the trend feed
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *api.Client
	logger *errors.Logger
}

// VaultSecret is a secret read from a KVv2 engine
type VaultSecret struct {
	Data    map[string]any
	Version int64
}

// NewVaultClient connects to Vault. It returns nil, nil when Vault is disabled
func NewVaultClient(cfg VaultConfig, logger *errors.Logger) (*VaultClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	apiCfg := api.DefaultConfig()
	if cfg.Address != "" {
		apiCfg.Address = cfg.Address
	}
	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, vaultError("failed to create vault client", err)
	}
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	token, err := resolveVaultToken(cfg)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	health, err := client.Sys().Health()
	if err != nil {
		return nil, vaultError("failed to connect to vault", err)
	}
	logger.Info("Connected to Vault",
		"address", apiCfg.Address,
		"version", health.Version,
		"sealed", health.Sealed)

	return &VaultClient{client: client, logger: logger}, nil
}

func resolveVaultToken(cfg VaultConfig) (string, error) {
	token := cfg.Token
	if token == "" && cfg.TokenFile != "" {
		b, err := os.ReadFile(cfg.TokenFile)
		if err != nil {
			return "", vaultError("failed to read vault token file", err)
		}
		token = strings.TrimSpace(string(b))
	}
	if token == "" {
		return "", vaultError("vault token is required when vault is enabled", nil)
	}
	return token, nil
}

func vaultError(message string, cause error) error {
	return errors.NewConfigError(errors.ErrCodeInvalidConfig, message, cause)
}

// GetSecretV2 reads a KVv2 secret and unwraps its data and version
func (vc *VaultClient) GetSecretV2(path string) (*VaultSecret, error) {
	if vc == nil {
		return nil, vaultError("vault client not initialized", nil)
	}

	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return nil, vaultError(fmt.Sprintf("failed to read secret from %s", path), err)
	}
	if secret == nil || secret.Data == nil {
		return nil, vaultError(fmt.Sprintf("secret not found at path: %s", path), nil)
	}

	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return nil, vaultError(fmt.Sprintf("secret at %s is not in KVv2 format (missing 'data' field)", path), nil)
	}
	metadata, ok := secret.Data["metadata"].(map[string]any)
	if !ok {
		return nil, vaultError(fmt.Sprintf("secret at %s is not in KVv2 format (missing 'metadata' field)", path), nil)
	}
	version, err := parseVersionValue(metadata["version"], path)
	if err != nil {
		return nil, err
	}

	return &VaultSecret{Data: data, Version: version}, nil
}

// parseVersionValue accepts the number encodings Vault's JSON decoding produces
func parseVersionValue(raw any, path string) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, vaultError(fmt.Sprintf("could not parse secret version at %s", path), err)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, vaultError(fmt.Sprintf("could not parse secret version at %s", path), err)
		}
		return n, nil
	case nil:
		return 0, vaultError(fmt.Sprintf("secret metadata at %s is missing 'version' field", path), nil)
	default:
		return 0, vaultError(fmt.Sprintf("unexpected type for version at %s: %T", path, raw), nil)
	}
}

// String returns a string field of the secret
func (s *VaultSecret) String(key string) (string, bool) {
	v, ok := s.Data[key].(string)
	return v, ok
}

// ApplyVaultSecrets loads secrets from Vault over the file and environment values
func ApplyVaultSecrets(cfg *Config, logger *errors.Logger) error {
	if !cfg.Vault.Enabled {
		logger.Debug("Vault integration disabled, skipping secret loading")
		return nil
	}

	client, err := NewVaultClient(cfg.Vault, logger)
	if err != nil {
		logger.LogError(err, "Failed to initialize Vault client")
		return err
	}
	return applySecrets(client, cfg, logger)
}

func applySecrets(client *VaultClient, cfg *Config, logger *errors.Logger) error {
	paths := cfg.Vault.Secrets

	if paths.APIKeys != "" {
		secret, err := client.GetSecretV2(paths.APIKeys)
		if err != nil {
			return err
		}
		raw, ok := secret.String("keys")
		if !ok {
			return vaultError(fmt.Sprintf("key 'keys' not found in secret %s", paths.APIKeys), nil)
		}
		if keys := splitAndTrim(raw); len(keys) > 0 {
			cfg.Server.APIKeys = keys
			logger.Info("API keys loaded from Vault", "count", len(keys))
		} else {
			logger.Warn("No API keys found in Vault", "path", paths.APIKeys)
		}
	}

	if paths.TLSCerts != "" {
		secret, err := client.GetSecretV2(paths.TLSCerts)
		if err != nil {
			return err
		}
		loaded := applyTLSContent(&cfg.Server.TLS, secret)
		logger.Info("TLS certificates loaded from Vault", "certificates_loaded", loaded)
	}

	if paths.TrendFeed != "" {
		secret, err := client.GetSecretV2(paths.TrendFeed)
		if err != nil {
			return err
		}
		if token, ok := secret.String("token"); ok && token != "" {
			cfg.Analysis.TrendFeed.Token = token
			logger.Info("Trend feed token loaded from Vault", "token", maskSecret(token))
		}
	}

	return nil
}

// applyTLSContent copies PEM content into the TLS config, replacing file sources
func applyTLSContent(tls *TLSConfig, secret *VaultSecret) int {
	loaded := 0
	for key, target := range map[string]*struct{ content, file *string }{
		"cert": {&tls.CertContent, &tls.CertFile},
		"key":  {&tls.KeyContent, &tls.KeyFile},
		"ca":   {&tls.CAContent, &tls.CAFile},
	} {
		if pem, ok := secret.String(key); ok && pem != "" {
			*target.content = pem
			*target.file = ""
			loaded++
		}
	}
	return loaded
}

func maskSecret(s string) string {
	if len(s) > 8 {
		return s[:4] + "****" + s[len(s)-4:]
	}
	return "****"
}
