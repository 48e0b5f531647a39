package pemkit

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
	"github.com/smallstep/pkcs7"
	gopkcs12 "software.sslmate.com/src/go-pkcs12"
)

// DefaultPasswords returns the list of passwords tried by default when
// opening password-protected PKCS#12 files and JKS keystores. Returns
// a fresh copy each call.
func DefaultPasswords() []string {
	return []string{"", "password", "changeit", "keypassword"}
}

// DeduplicatePasswords merges additional passwords with the defaults
// and removes duplicates while preserving order. Defaults come first,
// followed by any extra passwords not already in the list.
func DeduplicatePasswords(extra []string) []string {
	all := append(DefaultPasswords(), extra...)
	seen := make(map[string]bool, len(all))
	result := make([]string, 0, len(all))
	for _, p := range all {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}

// KeyFromCertificate classifies the key carried by a certificate. The
// certificate is re-encoded as a "CERTIFICATE" PEM block and run
// through the normal parse pipeline, so its SubjectPublicKeyInfo OID
// drives the classification.
func KeyFromCertificate(cert *x509.Certificate) (*Key, error) {
	return Parse(pem.EncodeToMemory(&pem.Block{
		Type:  "CERTIFICATE",
		Bytes: cert.Raw,
	}))
}

// KeysFromPKCS12 opens a PKCS#12/PFX bundle, trying each password in
// order, and returns the classified keys it carries: the private key
// first (re-encapsulated as PKCS#8), then the public keys of the leaf
// and CA certificates.
func KeysFromPKCS12(pfxData []byte, passwords []string) ([]*Key, error) {
	if len(passwords) == 0 {
		return nil, errors.New("decoding PKCS#12: no passwords to try")
	}
	var lastErr error
	for _, password := range passwords {
		privateKey, leaf, caCerts, err := gopkcs12.DecodeChain(pfxData, password)
		if err != nil {
			lastErr = err
			continue
		}

		var keys []*Key
		if privateKey != nil {
			keyPEM, err := MarshalPrivateKeyToPEM(privateKey)
			if err != nil {
				return nil, err
			}
			key, err := Parse([]byte(keyPEM))
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
		for _, cert := range append([]*x509.Certificate{leaf}, caCerts...) {
			if cert == nil {
				continue
			}
			key, err := KeyFromCertificate(cert)
			if err != nil {
				continue
			}
			keys = append(keys, key)
		}
		if len(keys) == 0 {
			return nil, errors.New("PKCS#12 bundle contains no usable keys")
		}
		return keys, nil
	}
	return nil, fmt.Errorf("decoding PKCS#12 with any provided password: %w", lastErr)
}

// KeysFromPKCS7 classifies the public keys of every certificate in a
// DER-encoded PKCS#7 bundle.
func KeysFromPKCS7(derData []byte) ([]*Key, error) {
	p7, err := pkcs7.Parse(derData)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#7: %w", err)
	}
	if len(p7.Certificates) == 0 {
		return nil, errors.New("PKCS#7 bundle contains no certificates")
	}

	var keys []*Key
	for _, cert := range p7.Certificates {
		key, err := KeyFromCertificate(cert)
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, errors.New("PKCS#7 bundle contains no classifiable keys")
	}
	return keys, nil
}

// KeysFromJKS opens a Java KeyStore, trying each password in order
// (the same password guards the store and its entries, per Java
// convention), and returns the classified keys: PKCS#8 private key
// entries and trusted certificate public keys. Individual entry
// errors are skipped; an error is returned only when the store cannot
// be loaded or no entry yields a key.
func KeysFromJKS(data []byte, passwords []string) ([]*Key, error) {
	if len(passwords) == 0 {
		return nil, errors.New("loading JKS: no passwords to try")
	}
	var lastErr error
	for _, password := range passwords {
		ks := keystore.New()
		if err := ks.Load(bytes.NewReader(data), []byte(password)); err != nil {
			lastErr = err
			continue
		}

		var keys []*Key
		for _, alias := range ks.Aliases() {
			if ks.IsPrivateKeyEntry(alias) {
				entry, err := ks.GetPrivateKeyEntry(alias, []byte(password))
				if err != nil {
					continue
				}
				key, err := Parse(pem.EncodeToMemory(&pem.Block{
					Type:  "PRIVATE KEY",
					Bytes: entry.PrivateKey,
				}))
				if err != nil {
					continue
				}
				keys = append(keys, key)

				for _, certEntry := range entry.CertificateChain {
					cert, err := x509.ParseCertificate(certEntry.Content)
					if err != nil {
						continue
					}
					if key, err := KeyFromCertificate(cert); err == nil {
						keys = append(keys, key)
					}
				}
			}

			if ks.IsTrustedCertificateEntry(alias) {
				entry, err := ks.GetTrustedCertificateEntry(alias)
				if err != nil {
					continue
				}
				cert, err := x509.ParseCertificate(entry.Certificate.Content)
				if err != nil {
					continue
				}
				if key, err := KeyFromCertificate(cert); err == nil {
					keys = append(keys, key)
				}
			}
		}
		if len(keys) == 0 {
			return nil, errors.New("JKS contains no usable keys")
		}
		return keys, nil
	}
	return nil, fmt.Errorf("loading JKS with any provided password: %w", lastErr)
}
