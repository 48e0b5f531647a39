package internal

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	ctx509 "github.com/google/certificate-transparency-go/x509"
	"golang.org/x/crypto/ssh"

	"github.com/sensiblebit/pemkit"
)

// InspectFile reads a file and returns identification results for all
// keys found in it, whether PEM-armored, bare DER, or inside a
// PKCS#7, PKCS#12, or JKS container.
func InspectFile(path string, passwords []string) ([]InspectResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var results []InspectResult
	if pemkit.IsPEM(data) {
		results = inspectPEMData(data)
	} else {
		results = inspectDERData(data, passwords)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no keys found in %s", path)
	}
	return results, nil
}

func inspectPEMData(data []byte) []InspectResult {
	var results []InspectResult
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		// OpenSSH keys use a proprietary encoding outside the core
		// dispatcher; identify them via x/crypto/ssh.
		if block.Type == "OPENSSH PRIVATE KEY" {
			if r, ok := inspectOpenSSHBlock(block); ok {
				results = append(results, r)
			}
			continue
		}

		key, err := pemkit.Parse(pem.EncodeToMemory(block))
		if err != nil {
			continue
		}
		results = append(results, resultFromKey(key, "PEM"))
	}
	return results
}

func inspectDERData(data []byte, passwords []string) []InspectResult {
	if cert, err := parseCertificateTolerant(data); err == nil {
		if key, err := pemkit.KeyFromCertificate(cert); err == nil {
			return []InspectResult{resultFromKey(key, "DER")}
		}
	}

	if keys, err := pemkit.KeysFromPKCS7(data); err == nil {
		return resultsFromKeys(keys, "PKCS7")
	}
	if keys, err := pemkit.KeysFromPKCS12(data, passwords); err == nil {
		return resultsFromKeys(keys, "PKCS12")
	}
	if keys, err := pemkit.KeysFromJKS(data, passwords); err == nil {
		return resultsFromKeys(keys, "JKS")
	}

	// Bare key DER: try the generic PKCS#8 wrappers.
	for _, tag := range []string{"PRIVATE KEY", "PUBLIC KEY"} {
		armored := pem.EncodeToMemory(&pem.Block{Type: tag, Bytes: data})
		if key, err := pemkit.Parse(armored); err == nil {
			return []InspectResult{resultFromKey(key, "DER")}
		}
	}
	return nil
}

func resultsFromKeys(keys []*pemkit.Key, source string) []InspectResult {
	results := make([]InspectResult, 0, len(keys))
	for _, key := range keys {
		results = append(results, resultFromKey(key, source))
	}
	return results
}

// resultFromKey builds the identification record for one classified
// key, enriching it with bit length and curve where the standard
// library can decode the structure.
func resultFromKey(key *pemkit.Key, source string) InspectResult {
	visibility := "public"
	if key.KeyType().Private() {
		visibility = "private"
	}
	r := InspectResult{
		Type:        key.KeyType().String(),
		Algorithm:   key.KeyType().Algorithm(),
		Standard:    key.Standard().String(),
		Visibility:  visibility,
		PEMTag:      key.Tag(),
		Fingerprint: key.Fingerprint(),
		Source:      source,
	}
	r.BitLength, r.Curve = keyDetails(key)
	return r
}

// keyDetails decodes the key far enough to report its size. Failures
// leave the fields zero; identification does not depend on them.
func keyDetails(key *pemkit.Key) (int, string) {
	der := key.Raw()

	switch key.Tag() {
	case "RSA PRIVATE KEY":
		if k, err := x509.ParsePKCS1PrivateKey(der); err == nil {
			return k.N.BitLen(), ""
		}
	case "RSA PUBLIC KEY":
		if k, err := x509.ParsePKCS1PublicKey(der); err == nil {
			return k.N.BitLen(), ""
		}
	case "EC PRIVATE KEY":
		if k, err := x509.ParseECPrivateKey(der); err == nil {
			return k.Curve.Params().BitSize, k.Curve.Params().Name
		}
	case "PRIVATE KEY":
		if k, err := x509.ParsePKCS8PrivateKey(der); err == nil {
			return publicKeyDetails(signerPublic(k))
		}
	case "PUBLIC KEY":
		if pub, err := x509.ParsePKIXPublicKey(der); err == nil {
			return publicKeyDetails(pub)
		}
	case "CERTIFICATE":
		if cert, err := parseCertificateTolerant(der); err == nil {
			return publicKeyDetails(cert.PublicKey)
		}
	}
	return 0, ""
}

func signerPublic(key crypto.PrivateKey) crypto.PublicKey {
	if signer, ok := key.(crypto.Signer); ok {
		return signer.Public()
	}
	return nil
}

func publicKeyDetails(pub crypto.PublicKey) (int, string) {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return k.N.BitLen(), ""
	case *ecdsa.PublicKey:
		return k.Curve.Params().BitSize, k.Curve.Params().Name
	case ed25519.PublicKey:
		return len(k) * 8, ""
	}
	return 0, ""
}

// parseCertificateTolerant parses a DER certificate with the standard
// library, falling back to the certificate-transparency fork, which
// accepts many nonstandard certificates stdlib rejects.
func parseCertificateTolerant(der []byte) (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(der)
	if err == nil {
		return cert, nil
	}
	ctCert, ctErr := ctx509.ParseCertificate(der)
	if ctErr != nil {
		return nil, fmt.Errorf("not a certificate: %w", err)
	}
	// Only the raw bytes and public key are needed downstream; rebuild
	// a stdlib value from the tolerant parse.
	return &x509.Certificate{Raw: ctCert.Raw, PublicKey: ctCert.PublicKey}, nil
}

func inspectOpenSSHBlock(block *pem.Block) (InspectResult, bool) {
	key, err := ssh.ParseRawPrivateKey(pem.EncodeToMemory(block))
	if err != nil {
		return InspectResult{}, false
	}
	algorithm := pemkit.KeyAlgorithmName(key)
	bits, curve := publicKeyDetails(signerPublic(key))
	return InspectResult{
		Type:       algorithm + " private key",
		Algorithm:  algorithm,
		Standard:   "OpenSSH",
		Visibility: "private",
		PEMTag:     block.Type,
		BitLength:  bits,
		Curve:      curve,
		Source:     "PEM",
	}, true
}
