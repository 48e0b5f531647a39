package internal

import (
	"encoding/pem"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sensiblebit/pemkit"
)

// ScanSummary reports what a scan run found.
type ScanSummary struct {
	FilesScanned int
	KeysFound    int
	KeysNew      int
	ByAlgorithm  map[string]int
}

// ScanPath walks a file or directory, classifies every key found, and
// catalogs the results. Per-file failures are logged and skipped so a
// single unreadable file does not abort the run.
func ScanPath(cfg *Config) (*ScanSummary, error) {
	summary := &ScanSummary{}

	processOne := func(path string) {
		summary.FilesScanned++
		found, inserted, err := ProcessFile(path, cfg)
		if err != nil {
			slog.Debug("skipping file", "path", path, "error", err)
			return
		}
		summary.KeysFound += found
		summary.KeysNew += inserted
	}

	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cfg.InputPath, err)
	}

	if info.IsDir() {
		err = filepath.WalkDir(cfg.InputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				processOne(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", cfg.InputPath, err)
		}
	} else {
		processOne(cfg.InputPath)
	}

	summary.ByAlgorithm, err = cfg.DB.CountByAlgorithm()
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ProcessFile classifies the keys in a single file and inserts them
// into the catalog. Returns the number of keys found and the number
// newly inserted. The path "-" reads stdin.
func ProcessFile(path string, cfg *Config) (found, inserted int, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("reading %s: %w", path, err)
	}

	keys := collectKeys(data, cfg.Passwords)
	if len(keys) == 0 {
		return 0, 0, fmt.Errorf("no keys found in %s", path)
	}

	now := time.Now().UTC()
	for _, key := range keys {
		bits, curve := keyDetails(key)
		isNew, err := cfg.DB.UpsertKey(KeyRecord{
			Fingerprint: key.Fingerprint(),
			KeyType:     key.KeyType().String(),
			Algorithm:   key.KeyType().Algorithm(),
			Standard:    key.Standard().String(),
			PEMTag:      key.Tag(),
			BitLength:   bits,
			Curve:       curve,
			PEM:         key.PEM(),
			Source:      path,
			FirstSeen:   now,
		})
		if err != nil {
			return found, inserted, err
		}
		found++
		if isNew {
			inserted++
		}
	}

	slog.Debug("processed file", "path", path, "keys", found, "new", inserted)
	return found, inserted, nil
}

// collectKeys extracts every classifiable key from raw file data,
// trying PEM first and then the binary container formats.
func collectKeys(data []byte, passwords []string) []*pemkit.Key {
	if pemkit.IsPEM(data) {
		var keys []*pemkit.Key
		rest := data
		for {
			var block *pem.Block
			block, rest = pem.Decode(rest)
			if block == nil {
				break
			}
			if key, err := pemkit.Parse(pem.EncodeToMemory(block)); err == nil {
				keys = append(keys, key)
			}
		}
		return keys
	}

	if cert, err := parseCertificateTolerant(data); err == nil {
		if key, err := pemkit.KeyFromCertificate(cert); err == nil {
			return []*pemkit.Key{key}
		}
	}
	if keys, err := pemkit.KeysFromPKCS7(data); err == nil {
		return keys
	}
	if keys, err := pemkit.KeysFromPKCS12(data, passwords); err == nil {
		return keys
	}
	if keys, err := pemkit.KeysFromJKS(data, passwords); err == nil {
		return keys
	}

	for _, tag := range []string{"PRIVATE KEY", "PUBLIC KEY"} {
		armored := pem.EncodeToMemory(&pem.Block{Type: tag, Bytes: data})
		if key, err := pemkit.Parse(armored); err == nil {
			return []*pemkit.Key{key}
		}
	}
	return nil
}
