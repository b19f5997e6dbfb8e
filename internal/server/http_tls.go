package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"resumeradar/internal/config"
	"resumeradar/internal/errors"
)

// buildTLSConfig returns nil for disabled mode, otherwise a static TLS configuration
// loaded from files or PEM content (the latter typically injected from Vault)
func buildTLSConfig(cfg config.TLSConfig) (*tls.Config, error) {
	switch cfg.Mode {
	case "", "disabled":
		return nil, nil
	case "server", "mutual":
	default:
		return nil, tlsError(fmt.Sprintf("invalid TLS mode: %s (must be 'disabled', 'server', or 'mutual')", cfg.Mode), nil)
	}

	cert, err := loadServerCertificate(cfg)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minTLSVersion(cfg.MinVersion),
		ClientAuth:   tls.NoClientCert,
	}

	if cfg.Mode == "mutual" {
		pool, err := loadCACertificatePool(cfg)
		if err != nil {
			return nil, err
		}
		tlsConfig.ClientCAs = pool
		tlsConfig.ClientAuth = clientAuthPolicy(cfg.ClientAuthPolicy)
	}
	return tlsConfig, nil
}

func tlsError(message string, cause error) error {
	return errors.NewConfigError(errors.ErrCodeInvalidConfig, message, cause)
}

// loadServerCertificate loads the server certificate from content or files
func loadServerCertificate(cfg config.TLSConfig) (tls.Certificate, error) {
	if cfg.CertContent != "" && cfg.KeyContent != "" {
		cert, err := tls.X509KeyPair([]byte(cfg.CertContent), []byte(cfg.KeyContent))
		if err != nil {
			return tls.Certificate{}, tlsError("failed to load server cert/key from content", err)
		}
		return cert, nil
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return tls.Certificate{}, tlsError("failed to load server cert/key from files", err)
		}
		return cert, nil
	}

	return tls.Certificate{}, tlsError("TLS certificate and key are required (provide either files or content)", nil)
}

func loadCACertificatePool(cfg config.TLSConfig) (*x509.CertPool, error) {
	var caCert []byte
	switch {
	case cfg.CAContent != "":
		caCert = []byte(cfg.CAContent)
	case cfg.CAFile != "":
		data, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, tlsError("failed to read CA file", err)
		}
		caCert = data
	default:
		return nil, tlsError("CA certificate is required for mutual TLS mode (provide either caFile or caContent)", nil)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, tlsError("failed to append CA cert", nil)
	}
	return pool, nil
}

func minTLSVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

func clientAuthPolicy(policy string) tls.ClientAuthType {
	switch policy {
	case "request":
		return tls.RequestClientCert
	case "verify":
		return tls.VerifyClientCertIfGiven
	default:
		return tls.RequireAndVerifyClientCert
	}
}
