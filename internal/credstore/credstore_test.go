package credstore

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestSaveLoadClear(t *testing.T) {
	keyring.MockInit()
	t.Setenv("TMMCP_KEYRING_SERVICE", "tmmcp-test-roundtrip")

	if err := Save("1//refresh-token"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	token, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "1//refresh-token" {
		t.Errorf("Load = %q, want %q", token, "1//refresh-token")
	}

	// Saving again replaces the previous token.
	if err := Save("1//newer-token"); err != nil {
		t.Fatalf("Save replacement: %v", err)
	}
	token, err = Load()
	if err != nil {
		t.Fatalf("Load after replace: %v", err)
	}
	if token != "1//newer-token" {
		t.Errorf("Load after replace = %q, want %q", token, "1//newer-token")
	}

	if err := Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Clear = %v, want ErrNotFound", err)
	}
}

func TestLoadMissing(t *testing.T) {
	keyring.MockInit()
	t.Setenv("TMMCP_KEYRING_SERVICE", "tmmcp-test-missing")

	if _, err := Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load = %v, want ErrNotFound", err)
	}
}

func TestClearMissing(t *testing.T) {
	keyring.MockInit()
	t.Setenv("TMMCP_KEYRING_SERVICE", "tmmcp-test-clear-missing")

	if err := Clear(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Clear = %v, want ErrNotFound", err)
	}
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	keyring.MockInit()
	t.Setenv("TMMCP_KEYRING_SERVICE", "tmmcp-test-empty")

	if err := Save("   "); err == nil {
		t.Error("expected error for blank token")
	}
}

func TestServiceIsolation(t *testing.T) {
	keyring.MockInit()

	t.Setenv("TMMCP_KEYRING_SERVICE", "tmmcp-test-svc-a")
	if err := Save("token-a"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("TMMCP_KEYRING_SERVICE", "tmmcp-test-svc-b")
	if _, err := Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound under a different service, got %v", err)
	}
}
