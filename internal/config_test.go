package internal

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
	cfg := HTTPConfig{Port: 8080}
	if err := cfg.Validate(); err != nil {
		t.Errorf("port 8080 should pass: %v", err)
	}
	if cfg.Address() != ":8080" {
		t.Errorf("address = %q", cfg.Address())
	}
}

func TestSnapshotConfig_PathRequired(t *testing.T) {
	cfg := SnapshotConfig{Path: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("empty snapshot path should fail validation")
	}
}

func TestGateConfig_Window(t *testing.T) {
	cfg := GateConfig{Taps: 10, WindowMS: 2500}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid gate config failed: %v", err)
	}
	if cfg.Window() != 2500*time.Millisecond {
		t.Errorf("window = %v", cfg.Window())
	}
}

func TestGateConfig_Bounds(t *testing.T) {
	if err := (&GateConfig{Taps: 0, WindowMS: 2500}).Validate(); err == nil {
		t.Error("zero taps should fail validation")
	}
	if err := (&GateConfig{Taps: 10, WindowMS: 50}).Validate(); err == nil {
		t.Error("sub-100ms window should fail validation")
	}
}

func TestFullConfig_GateValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Gate.Taps = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch gate error")
	}
}
