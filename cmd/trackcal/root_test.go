package trackcal

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := runCLI(t, "--help")
	if !strings.Contains(out, "trackcal") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackcal.db")
	for i := 0; i < 2; i++ {
		out := runCLI(t, "--db", path, "init")
		if !strings.Contains(out, "Initialized trackcal database") {
			t.Fatalf("init run %d: unexpected output %q", i+1, out)
		}
	}
}

func TestProfileSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackcal.db")

	out := runCLI(t, "--db", path, "profile", "set",
		"--gender", "male", "--weight", "90", "--height", "180",
		"--age", "30", "--activity", "moderate", "--goal", "maintain")
	// BMR 1880 * 1.55 = 2914, maintain leaves it unchanged
	if !strings.Contains(out, "2914 kcal") {
		t.Fatalf("expected computed goal 2914 kcal, got %q", out)
	}

	out = runCLI(t, "--db", path, "profile", "show")
	if !strings.Contains(out, "Daily calories: 2914 kcal") {
		t.Fatalf("expected stored goal in show output, got %q", out)
	}
}

func TestProfileSetRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackcal.db")
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--db", path, "profile", "set",
		"--gender", "other", "--weight", "80", "--height", "180",
		"--age", "30", "--activity", "moderate", "--goal", "maintain"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected validation error for bad gender")
	}
}

func TestEntryAddListDeleteFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackcal.db")

	out := runCLI(t, "--db", path, "entry", "add",
		"--description", "omelette", "--calories", "320",
		"--date", "2026-08-30", "--time", "08:30")
	if !strings.Contains(out, "Added entry 1") {
		t.Fatalf("unexpected add output %q", out)
	}

	out = runCLI(t, "--db", path, "entry", "list")
	if !strings.Contains(out, "omelette") || !strings.Contains(out, "320") {
		t.Fatalf("expected entry in list, got %q", out)
	}
	if !strings.Contains(out, "main dish") {
		t.Fatalf("expected default category, got %q", out)
	}

	out = runCLI(t, "--db", path, "today", "--date", "2026-08-30")
	if !strings.Contains(out, "Calories: 320 kcal") {
		t.Fatalf("expected day total 320, got %q", out)
	}

	out = runCLI(t, "--db", path, "entry", "delete", "1")
	if !strings.Contains(out, "Deleted entry 1") {
		t.Fatalf("unexpected delete output %q", out)
	}

	out = runCLI(t, "--db", path, "today", "--date", "2026-08-30")
	if !strings.Contains(out, "Calories: 0 kcal") {
		t.Fatalf("expected empty day total after delete, got %q", out)
	}
}
