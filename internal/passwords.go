package internal

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sensiblebit/pemkit"
)

// LoadPasswordsFromFile loads passwords from a file, one password per line.
func LoadPasswordsFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var passwords []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if pwd := strings.TrimSpace(scanner.Text()); pwd != "" {
			passwords = append(passwords, pwd)
		}
	}
	return passwords, scanner.Err()
}

// ProcessPasswords assembles the candidate password list from the
// defaults, a comma-separated flag value, and an optional file.
// Duplicates are removed while preserving order.
func ProcessPasswords(passwordList, passwordFile string) ([]string, error) {
	var extra []string
	if passwordList != "" {
		for _, pwd := range strings.Split(passwordList, ",") {
			extra = append(extra, strings.TrimSpace(pwd))
		}
	}

	if passwordFile != "" {
		filePasswords, err := LoadPasswordsFromFile(passwordFile)
		if err != nil {
			return nil, fmt.Errorf("loading passwords from file: %w", err)
		}
		extra = append(extra, filePasswords...)
	}

	return pemkit.DeduplicatePasswords(extra), nil
}
