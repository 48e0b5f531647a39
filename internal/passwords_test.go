package internal

import (
	"slices"
	"testing"

	"github.com/sensiblebit/pemkit"
)

func TestProcessPasswords_DefaultsOnly(t *testing.T) {
	t.Parallel()
	passwords, err := ProcessPasswords("", "")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(passwords, pemkit.DefaultPasswords()) {
		t.Errorf("got %v, want defaults %v", passwords, pemkit.DefaultPasswords())
	}
}

func TestProcessPasswords_ListAndFile(t *testing.T) {
	// WHY: Flag, file, and default passwords merge in a fixed order
	// with duplicates removed; container decoding tries them in order.
	t.Parallel()
	path := writeTempFile(t, "passwords.txt", []byte("filepass\n\n  spaced  \nchangeit\n"))

	passwords, err := ProcessPasswords("flagpass, changeit", path)
	if err != nil {
		t.Fatal(err)
	}

	want := append(pemkit.DefaultPasswords(), "flagpass", "filepass", "spaced")
	if !slices.Equal(passwords, want) {
		t.Errorf("got %v, want %v", passwords, want)
	}
}

func TestProcessPasswords_MissingFile(t *testing.T) {
	t.Parallel()
	if _, err := ProcessPasswords("", "/nonexistent/passwords.txt"); err == nil {
		t.Error("expected error for missing password file")
	}
}
