package internal

import (
	"crypto"
	"crypto/elliptic"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sensiblebit/pemkit"
)

// KeygenOptions configures key generation.
type KeygenOptions struct {
	Algorithm string // rsa, ecdsa, or ed25519
	Bits      int    // RSA key size
	Curve     string // ECDSA curve name
	Standard  string // pkcs8 or pkcs1 (legacy) private key encapsulation
	OutPath   string // output directory; empty means return PEM only
}

// KeygenResult holds generated key material and, when OutPath was set,
// the files written.
type KeygenResult struct {
	KeyPEM  string
	PubPEM  string
	KeyFile string
	PubFile string
}

// GenerateKey generates a private key for the given algorithm.
func GenerateKey(algorithm string, bits int, curve string) (crypto.Signer, error) {
	switch algorithm {
	case "rsa":
		return pemkit.GenerateRSAKey(bits)
	case "ecdsa":
		curves := map[string]elliptic.Curve{
			"P-256": elliptic.P256(),
			"P-384": elliptic.P384(),
			"P-521": elliptic.P521(),
		}
		c, ok := curves[curve]
		if !ok {
			return nil, fmt.Errorf("unsupported curve %q", curve)
		}
		return pemkit.GenerateECKey(c)
	case "ed25519":
		_, priv, err := pemkit.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		return priv, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", algorithm)
	}
}

// GenerateKeyFiles generates a key pair per the options and either
// returns the PEM text or writes key.pem/pub.pem under OutPath.
func GenerateKeyFiles(opts KeygenOptions) (*KeygenResult, error) {
	signer, err := GenerateKey(opts.Algorithm, opts.Bits, opts.Curve)
	if err != nil {
		return nil, err
	}

	var keyPEM string
	switch opts.Standard {
	case "", "pkcs8":
		keyPEM, err = pemkit.MarshalPrivateKeyToPEM(signer)
	case "pkcs1":
		keyPEM, err = pemkit.MarshalPrivateKeyToLegacyPEM(signer)
	default:
		return nil, fmt.Errorf("unsupported standard %q", opts.Standard)
	}
	if err != nil {
		return nil, err
	}

	pubPEM, err := pemkit.MarshalPublicKeyToPEM(signer.Public())
	if err != nil {
		return nil, err
	}

	result := &KeygenResult{KeyPEM: keyPEM, PubPEM: pubPEM}
	if opts.OutPath == "" {
		return result, nil
	}

	if err := os.MkdirAll(opts.OutPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	result.KeyFile = filepath.Join(opts.OutPath, "key.pem")
	result.PubFile = filepath.Join(opts.OutPath, "pub.pem")
	if err := os.WriteFile(result.KeyFile, []byte(keyPEM), 0o600); err != nil {
		return nil, fmt.Errorf("writing private key: %w", err)
	}
	if err := os.WriteFile(result.PubFile, []byte(pubPEM), 0o644); err != nil {
		return nil, fmt.Errorf("writing public key: %w", err)
	}
	return result, nil
}
