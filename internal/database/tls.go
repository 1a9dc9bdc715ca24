package database

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

// tlsConfigName is the key under which the trust anchor is registered with the driver.
const tlsConfigName = "agenda-ca"

// resolveTrustAnchor picks the CA file to use. The configured path wins when
// it exists; otherwise the fallback is substituted when present. An empty
// result means the connection is made without TLS.
func resolveTrustAnchor(configured, fallback string) string {
	if configured != "" && fileExists(configured) {
		return configured
	}

	if fallback != "" && fileExists(fallback) {
		if configured != "" {
			log.Info().Str("configured", configured).Str("fallback", fallback).
				Msg("Configured CA not found, using local fallback certificate")
		} else {
			log.Info().Str("fallback", fallback).Msg("Using local fallback certificate")
		}
		return fallback
	}

	if configured != "" {
		log.Warn().Str("configured", configured).Msg("CA certificate not found, connecting without TLS")
	} else {
		log.Warn().Msg("No CA certificate configured, connecting without TLS")
	}
	return ""
}

// registerTrustAnchor loads the PEM bundle at caPath and registers it with
// the MySQL driver, returning the name to reference from the DSN.
func registerTrustAnchor(caPath, serverName string) (string, error) {
	pem, err := os.ReadFile(caPath)
	if err != nil {
		return "", fmt.Errorf("failed to read CA certificate: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return "", errors.New("CA certificate contains no usable PEM blocks")
	}

	err = mysql.RegisterTLSConfig(tlsConfigName, &tls.Config{
		RootCAs:    pool,
		ServerName: serverName,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return "", fmt.Errorf("failed to register TLS config: %w", err)
	}

	return tlsConfigName, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
