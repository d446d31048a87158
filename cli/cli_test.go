package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"carouselgen/core"
	"carouselgen/db"
	"carouselgen/ledger"
)

const testCatalogYAML = `
version: "4.0"
industries:
  - id: pet_care
    name: Pet Care
    sector: E-commerce
    tone: warm
    packs: [myth_buster]
    styles:
      primary: [Warm Friendly]
packs:
  - id: myth_buster
    name: Myth Buster Carousel
    hook: "Think X? Wrong."
    slides: [Myth, Why, Truth, Proof, Learn]
`

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testPaths(t *testing.T) (ledgerPath, catalogPath string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LOG_FILE", filepath.Join(dir, "test.log"))
	t.Setenv("OPENAI_API_KEY", "")

	catalogPath = filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalogPath, []byte(testCatalogYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, "ledger.json"), catalogPath
}

func TestPromptsCommandWritesLedger(t *testing.T) {
	ledgerPath, catalogPath := testPaths(t)

	out, err := execute(t, "prompts", "--ledger", ledgerPath, "--catalog", catalogPath)
	if err != nil {
		t.Fatalf("prompts command error = %v", err)
	}
	if !strings.Contains(out, "Wrote 1 prompts") {
		t.Errorf("output = %q, want write confirmation", out)
	}

	led, err := ledger.NewStore(ledgerPath).Load()
	if err != nil {
		t.Fatalf("loading written ledger: %v", err)
	}
	if led.TotalPrompts != 1 {
		t.Errorf("TotalPrompts = %d, want 1", led.TotalPrompts)
	}
}

func TestPromptsCommandRefusesOverwrite(t *testing.T) {
	ledgerPath, catalogPath := testPaths(t)

	if _, err := execute(t, "prompts", "--ledger", ledgerPath, "--catalog", catalogPath); err != nil {
		t.Fatal(err)
	}

	// Second run without --force must refuse: the ledger may hold progress.
	if _, err := execute(t, "prompts", "--ledger", ledgerPath, "--catalog", catalogPath); err == nil {
		t.Fatal("second prompts run should refuse to overwrite")
	}

	if _, err := execute(t, "prompts", "--ledger", ledgerPath, "--catalog", catalogPath, "--force"); err != nil {
		t.Errorf("prompts --force error = %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	ledgerPath, _ := testPaths(t)

	led := &ledger.Ledger{
		Version:      "4.0",
		TotalPrompts: 2,
		Prompts: []*ledger.Item{
			{ID: 1, Filename: "001_a.png"},
			{ID: 2, Filename: "002_b.png"},
		},
	}
	led.Prompts[0].MarkSuccess("001_a.png", "", time.Now())
	led.Prompts[1].MarkFailed("status code: 400", time.Now())
	if err := ledger.NewStore(ledgerPath).Save(led); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "status", "--ledger", ledgerPath)
	if err != nil {
		t.Fatalf("status command error = %v", err)
	}
	for _, want := range []string{"Total:    2", "Success:  1", "Failed:   1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCommandListsFailed(t *testing.T) {
	ledgerPath, _ := testPaths(t)

	led := &ledger.Ledger{TotalPrompts: 1, Prompts: []*ledger.Item{{ID: 1, Filename: "001_a.png"}}}
	led.Prompts[0].MarkFailed("status code: 400, message: bad prompt", time.Now())
	if err := ledger.NewStore(ledgerPath).Save(led); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "status", "--ledger", ledgerPath, "--failed")
	if err != nil {
		t.Fatalf("status --failed error = %v", err)
	}
	if !strings.Contains(out, "001_a.png") || !strings.Contains(out, "bad prompt") {
		t.Errorf("output missing failed item detail:\n%s", out)
	}
}

func TestStatusCommandShowsAttempts(t *testing.T) {
	ledgerPath, _ := testPaths(t)
	historyPath := filepath.Join(filepath.Dir(ledgerPath), "history.db")
	t.Setenv("HISTORY_DB_PATH", historyPath)

	led := &ledger.Ledger{TotalPrompts: 1, Prompts: []*ledger.Item{{ID: 7, Filename: "007_x.png"}}}
	if err := ledger.NewStore(ledgerPath).Save(led); err != nil {
		t.Fatal(err)
	}

	history, err := db.OpenHistory(historyPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := history.RecordAttempt(context.Background(), db.AttemptRecord{
		CorrelationID: "run-1",
		ItemID:        7,
		Filename:      "007_x.png",
		Attempt:       1,
		Status:        "transient",
		ErrorMessage:  "status code: 500",
	}); err != nil {
		t.Fatal(err)
	}
	history.Close()

	out, err := execute(t, "status", "--ledger", ledgerPath, "--attempts", "5")
	if err != nil {
		t.Fatalf("status --attempts error = %v", err)
	}
	for _, want := range []string{"Recent attempts (1)", "item 007", "status code: 500"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCommandAttemptsWithoutHistory(t *testing.T) {
	ledgerPath, _ := testPaths(t)
	t.Setenv("HISTORY_DB_PATH", filepath.Join(filepath.Dir(ledgerPath), "absent.db"))

	led := &ledger.Ledger{TotalPrompts: 1, Prompts: []*ledger.Item{{ID: 1, Filename: "001_a.png"}}}
	if err := ledger.NewStore(ledgerPath).Save(led); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "status", "--ledger", ledgerPath, "--attempts", "5")
	if err != nil {
		t.Fatalf("status --attempts error = %v", err)
	}
	if !strings.Contains(out, "No attempt history") {
		t.Errorf("output = %q, want missing-history notice", out)
	}
}

func TestStatusCommandMissingLedger(t *testing.T) {
	ledgerPath, _ := testPaths(t)

	if _, err := execute(t, "status", "--ledger", ledgerPath); err == nil {
		t.Fatal("status on missing ledger should error")
	}
}

func TestGenerateRequiresCredentials(t *testing.T) {
	ledgerPath, _ := testPaths(t)

	_, err := execute(t, "generate", "--ledger", ledgerPath)
	if err == nil {
		t.Fatal("generate without an API key should fail")
	}
	if code := core.GetErrorCode(err); code != core.ErrCodeMissingAuth {
		t.Errorf("error code = %q, want %q", code, core.ErrCodeMissingAuth)
	}

	// The failure must come before any ledger access: the path stays absent.
	if _, statErr := os.Stat(ledgerPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("credential failure should not create or touch the ledger")
	}
}

func TestGenerateStatusOnlyNeedsNoCredentials(t *testing.T) {
	ledgerPath, _ := testPaths(t)

	led := &ledger.Ledger{TotalPrompts: 1, Prompts: []*ledger.Item{{ID: 1, Filename: "001_a.png"}}}
	if err := ledger.NewStore(ledgerPath).Save(led); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "generate", "--status", "--ledger", ledgerPath)
	if err != nil {
		t.Fatalf("generate --status error = %v", err)
	}
	if !strings.Contains(out, "Pending:  1") {
		t.Errorf("output = %q, want pending count", out)
	}
}
