package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/akeeley/heapsched/internal/config"
	"github.com/akeeley/heapsched/internal/task"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(oldWd) }()
	_ = os.Chdir(tempDir)

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	// Check config was created and loads cleanly
	if _, err := os.Stat("heapsched.yaml"); os.IsNotExist(err) {
		t.Error("heapsched.yaml was not created")
	}
	if _, err := config.NewLoader().LoadFromPath("heapsched.yaml"); err != nil {
		t.Errorf("created config does not load: %v", err)
	}

	// Check sample workload was created and parses
	if _, err := os.Stat("workload.yaml"); os.IsNotExist(err) {
		t.Fatal("workload.yaml was not created")
	}
	w, err := task.ParseWorkloadFile("workload.yaml")
	if err != nil {
		t.Fatalf("created workload does not parse: %v", err)
	}
	if len(w.Tasks) == 0 {
		t.Error("sample workload has no tasks")
	}
}

func TestInitIdempotent(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(oldWd) }()
	_ = os.Chdir(tempDir)

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("first runInit() error: %v", err)
	}

	// A second run must not error or clobber edits
	marker := []byte("version: 1\nname: edited\ntasks:\n  - id: only\n    priority: 1\n")
	if err := os.WriteFile("workload.yaml", marker, 0600); err != nil {
		t.Fatalf("write marker workload: %v", err)
	}

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("second runInit() error: %v", err)
	}

	content, err := os.ReadFile("workload.yaml")
	if err != nil {
		t.Fatalf("read workload: %v", err)
	}
	if !strings.Contains(string(content), "name: edited") {
		t.Error("second init overwrote an existing workload")
	}
}

func TestInitForce(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(oldWd) }()
	_ = os.Chdir(tempDir)

	if err := os.WriteFile("workload.yaml", []byte("garbage: true\n"), 0600); err != nil {
		t.Fatalf("write stale workload: %v", err)
	}

	initForce = true
	defer func() { initForce = false }()

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit() with force error: %v", err)
	}

	if _, err := task.ParseWorkloadFile("workload.yaml"); err != nil {
		t.Errorf("forced init should rewrite the workload: %v", err)
	}
}

func TestSampleWorkload(t *testing.T) {
	w := sampleWorkload()

	if err := w.Validate(); err != nil {
		t.Fatalf("sample workload is invalid: %v", err)
	}

	// The sample should show off deadlines and contention at one tick
	deadlines := 0
	byTick := make(map[int]int)
	for _, rec := range w.Tasks {
		if rec.HasDeadline() {
			deadlines++
		}
		byTick[rec.ArrivalTime]++
	}
	if deadlines == 0 {
		t.Error("sample workload has no deadline tasks")
	}

	contended := false
	for _, n := range byTick {
		if n > 1 {
			contended = true
		}
	}
	if !contended {
		t.Error("sample workload has no tick with multiple arrivals")
	}
}
