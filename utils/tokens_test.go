package utils

import "testing"

func TestNewManagerRejectsEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestNewRefreshToken(t *testing.T) {
	m, err := NewManager("secret")
	if err != nil {
		t.Fatal(err)
	}

	first, err := m.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 64 {
		t.Errorf("token length = %d; want 64 hex chars", len(first))
	}
	for _, c := range first {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("token contains non-hex char %q", c)
		}
	}

	second, err := m.NewRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two refresh tokens are identical")
	}
}
