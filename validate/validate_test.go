package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLevel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write level file: %v", err)
	}
	return path
}

func hasMessage(result ValidationResult, substr string) bool {
	for _, msg := range result.Errors {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func TestValidateLevelValid(t *testing.T) {
	result := validateLevel(writeLevel(t, "G   F\n"))

	if !result.Valid {
		t.Fatalf("Expected valid level, got errors: %v", result.Errors)
	}
	if !hasMessage(result, "✓ Grid: 1x5") {
		t.Errorf("Expected grid info line, got: %v", result.Errors)
	}
	if !hasMessage(result, "Connectivity") {
		t.Errorf("Expected connectivity info line, got: %v", result.Errors)
	}
}

func TestValidateLevelCounts(t *testing.T) {
	result := validateLevel(writeLevel(t, "G MWx\no w F\n"))

	if !result.Valid {
		t.Fatalf("Expected valid level, got errors: %v", result.Errors)
	}
	if !hasMessage(result, "Weights: 1 heavy, 1 sliding") {
		t.Errorf("Expected weight counts, got: %v", result.Errors)
	}
	if !hasMessage(result, "Traps: 1, Holes: 1") {
		t.Errorf("Expected trap and hole counts, got: %v", result.Errors)
	}
}

func TestValidateLevelMissingFile(t *testing.T) {
	result := validateLevel(filepath.Join(t.TempDir(), "missing.txt"))

	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasMessage(result, "Failed to load level") {
		t.Errorf("Expected load failure message, got: %v", result.Errors)
	}
}

func TestValidateLevelTwoRams(t *testing.T) {
	result := validateLevel(writeLevel(t, "G G F\n"))

	if result.Valid {
		t.Error("Expected invalid result for a board with two rams")
	}
	if !hasMessage(result, "Invalid board") {
		t.Errorf("Expected board validation message, got: %v", result.Errors)
	}
}

func TestValidateLevelNoFinish(t *testing.T) {
	result := validateLevel(writeLevel(t, "G    \n"))

	if result.Valid {
		t.Error("Expected invalid result for a board without a finish tile")
	}
}

func TestValidateLevelLethalStart(t *testing.T) {
	result := validateLevel(writeLevel(t, "F G <\n"))

	if result.Valid {
		t.Error("Expected invalid result when the ram starts inside a beam")
	}
	if !hasMessage(result, "laser beam before the first move") {
		t.Errorf("Expected lethal start message, got: %v", result.Errors)
	}
}

func TestValidateLevelUnreachableFinish(t *testing.T) {
	result := validateLevel(writeLevel(t, "G xFx\n"))

	if result.Valid {
		t.Error("Expected invalid result when traps wall off the finish")
	}
	if !hasMessage(result, "Connectivity failure") {
		t.Errorf("Expected connectivity failure message, got: %v", result.Errors)
	}
}

func TestValidateReachabilityThroughWalls(t *testing.T) {
	// Walls are breakable, so they do not block reachability.
	result := validateLevel(writeLevel(t, "GMMMF\n"))

	if !result.Valid {
		t.Fatalf("Expected walls to count as passable, got errors: %v", result.Errors)
	}
}
