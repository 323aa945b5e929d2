// ABOUTME: Tests for the API key pool
// ABOUTME: Covers construction errors and rotation wrap-around

package llm

import "testing"

func TestNewKeyPoolRequiresKeys(t *testing.T) {
	if _, err := NewKeyPool("https://example.com/v1", nil); err == nil {
		t.Fatal("expected an error for an empty key list")
	}
}

func TestKeyPoolRotateWraps(t *testing.T) {
	pool, err := NewKeyPool("https://example.com/v1", []string{"one", "two", "three"})
	if err != nil {
		t.Fatalf("NewKeyPool: %v", err)
	}
	if pool.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", pool.Size())
	}

	first := pool.Current()
	pool.Rotate()
	second := pool.Current()
	if second == first {
		t.Fatal("Rotate() did not advance to the next client")
	}
	pool.Rotate()
	pool.Rotate()
	if pool.Current() != first {
		t.Fatal("Rotate() did not wrap back to the first client")
	}
}

func TestKeyPoolSingleKey(t *testing.T) {
	pool, err := NewKeyPool("https://example.com/v1", []string{"only"})
	if err != nil {
		t.Fatalf("NewKeyPool: %v", err)
	}
	first := pool.Current()
	pool.Rotate()
	if pool.Current() != first {
		t.Fatal("rotating a single-key pool changed the client")
	}
}
