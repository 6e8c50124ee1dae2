package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/ibs-source/mqtt-client/internal/config"
)

// newTLSConfig creates the TLS configuration for the ssl scheme.
// Without a CA file the system roots are used; without a key pair no client certificate is sent.
func newTLSConfig(cfg *config.MQTTConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkip, // #nosec G402 - opt-in for test brokers with self-signed certs
		MinVersion:         tls.VersionTLS12,
	}

	if cfg.CACert != "" {
		pool, err := loadRootCAs(cfg.CACert)
		if err != nil {
			return nil, err
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert/key: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// loadRootCAs reads a PEM bundle into a certificate pool
func loadRootCAs(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path) // #nosec G304 - path is from config
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("failed to parse CA cert %s", path)
	}
	return pool, nil
}
