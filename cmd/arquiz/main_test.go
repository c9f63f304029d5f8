package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/config"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/library"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/store"
)

func newTestLibrary(t *testing.T) *library.Manager {
	t.Helper()
	kv, err := store.NewJSONFile(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = kv.Close()
	})
	return library.New(store.NewCollections(kv))
}

func TestRunTextQuiz(t *testing.T) {
	lib := newTestLibrary(t)
	in := strings.NewReader("1\n\n9\n2\n\n")
	var out bytes.Buffer
	if err := runTextQuiz(context.Background(), in, &out, lib, "Flask", true); err != nil {
		t.Fatalf("run quiz: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Question 1 of 5",
		"Question 5 of 5",
		"Please enter a number between 1 and 4.",
		"You scored 1 out of 5.",
		"Last: 20%",
		"Your answer: Not answered",
		"Saved 4 question(s) to favourites.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}

	ctx := context.Background()
	favs, err := lib.Favorites(ctx)
	if err != nil || len(favs) != 4 {
		t.Fatalf("expected 4 favourites, got %d (err=%v)", len(favs), err)
	}
	recent, err := lib.RecentScans(ctx)
	if err != nil || len(recent) != 1 || recent[0].Object != "Flask" {
		t.Fatalf("expected one recent scan of Flask, got %+v (err=%v)", recent, err)
	}
}

func TestRunTextQuizRejectsEmptyObject(t *testing.T) {
	lib := newTestLibrary(t)
	var out bytes.Buffer
	if err := runTextQuiz(context.Background(), strings.NewReader(""), &out, lib, "  ", false); err == nil {
		t.Fatalf("expected error for empty object")
	}
}

func TestPrintListings(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()
	var out bytes.Buffer
	if err := printFavorites(ctx, &out, lib); err != nil {
		t.Fatalf("print favourites: %v", err)
	}
	if strings.TrimSpace(out.String()) != "No favourite questions saved yet." {
		t.Fatalf("unexpected empty listing: %q", out.String())
	}

	if _, err := lib.RecordScan(ctx, "beaker"); err != nil {
		t.Fatalf("record scan: %v", err)
	}
	out.Reset()
	if err := printRecent(ctx, &out, lib); err != nil {
		t.Fatalf("print recent: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "Object") || !strings.Contains(lines[1], "beaker") {
		t.Fatalf("unexpected recent listing: %q", lines)
	}
}

func TestParseEntryNumber(t *testing.T) {
	if idx, err := parseEntryNumber("3"); err != nil || idx != 2 {
		t.Fatalf("expected index 2, got %d (err=%v)", idx, err)
	}
	for _, v := range []string{"0", "-1", "x"} {
		if _, err := parseEntryNumber(v); err == nil {
			t.Fatalf("expected error for %q", v)
		}
	}
}

func TestResolveOptionsPrecedence(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv(config.EnvStore, "json")
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvClassifierURL, "")
	t.Setenv(config.EnvAddr, "")

	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `
[storage]
engine = "sqlite"

[classifier]
timeout = "5s"
label = "Beaker"

[camera]
frame = "/tmp/frames"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--label", "Flask"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := resolveOptions(cmd); err != nil {
		t.Fatalf("resolve options: %v", err)
	}
	if opts.StoreEngine != "json" {
		t.Fatalf("expected env to override file engine, got %q", opts.StoreEngine)
	}
	if opts.StaticLabel != "Flask" {
		t.Fatalf("expected flag label, got %q", opts.StaticLabel)
	}
	if opts.ClassifierTimeout != 5*time.Second {
		t.Fatalf("expected file timeout, got %s", opts.ClassifierTimeout)
	}
	if opts.FramePath != "/tmp/frames" {
		t.Fatalf("expected file frame, got %q", opts.FramePath)
	}
	if opts.ClassifierURL != "" {
		t.Fatalf("expected no classifier url, got %q", opts.ClassifierURL)
	}
}

func TestValidateOptions(t *testing.T) {
	base := model.Config{StoreEngine: "sqlite", ClassifierTimeout: time.Second}
	if err := validateOptions(base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := base
	bad.StoreEngine = "redis"
	if err := validateOptions(bad); err == nil {
		t.Fatalf("expected engine error")
	}
	bad = base
	bad.MinConfidence = 1.5
	if err := validateOptions(bad); err == nil {
		t.Fatalf("expected confidence error")
	}
}

func TestNewVisionModelWithoutEndpoint(t *testing.T) {
	m, err := newVisionModel(model.Config{StaticLabel: "Beaker"})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	preds, err := m.Classify(context.Background(), model.Frame{Data: []byte("x")})
	if err != nil || len(preds) != 1 || preds[0].Label != "Beaker" {
		t.Fatalf("expected Beaker prediction, got %+v (err=%v)", preds, err)
	}
}
