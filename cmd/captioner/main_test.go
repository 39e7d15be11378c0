package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captioner/internal/config"
	"captioner/internal/history"
	"captioner/internal/services"
	"captioner/internal/testsupport"
)

const chunkSRT = "1\n00:00:00,000 --> 00:00:01,500\nHello there.\n\n2\n00:00:02,000 --> 00:00:02,500\nBye\n"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, cfg),
		baseDir:    testsupport.BaseDir(cfg),
	}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}

func TestRenderWritesSubtitleFile(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteTranscript(t, env.baseDir, "talk.json", testsupport.ChunkTranscript)

	out, _, err := runCLI(t, env, "", "render", input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	target := filepath.Join(env.baseDir, "talk.srt")
	requireContains(t, out, "Wrote 2 cues to "+target)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != chunkSRT {
		t.Fatalf("unexpected subtitle content %q", data)
	}
}

func TestRenderStdinToStdoutVTT(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, testsupport.WordTranscript, "render", "-", "--stdout", "--format", "vtt")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "WEBVTT\n\n1\n00:00:00.000 --> 00:00:00.900\nHi there.\n\n2\n00:00:01.000 --> 00:00:01.300\nBye\n"
	if out != want {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderStdinRequiresOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, env, testsupport.WordTranscript, "render", "-")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRenderUsesProbedDuration(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubFFprobe("10.0"))
	input := testsupport.WriteTranscript(t, env.baseDir, "talk.json", testsupport.ChunkTranscript)

	out, _, err := runCLI(t, env, "", "render", input, "--stdout", "--probe", filepath.Join(env.baseDir, "talk.wav"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	requireContains(t, out, "00:00:02,000 --> 00:00:10,000\nBye\n")
}

func TestRenderFlagOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteTranscript(t, env.baseDir, "talk.json", testsupport.WordTranscript)

	out, _, err := runCLI(t, env, "", "render", input, "-o", "-", "--mode", "span", "--duration", "3")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	requireContains(t, out, "3\n00:00:01,000 --> 00:00:01,300\nBye\n")

	if _, _, err := runCLI(t, env, "", "render", input, "--stdout", "--duration", "0"); !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected malformed duration error, got %v", err)
	}
	if _, _, err := runCLI(t, env, "", "render", input, "--stdout", "--max-chars", "0"); !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected malformed segmentation error, got %v", err)
	}
}

func TestRenderMalformedRecordsFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteTranscript(t, env.baseDir, "bad.json", testsupport.MalformedTranscript)

	_, _, err := runCLI(t, env, "", "render", input)
	if !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}

	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.List(t.Context(), 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != history.StatusFailed || runs[0].ErrorMessage == "" {
		t.Fatalf("expected one failed run, got %+v", runs)
	}
}

func TestInspectJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, testsupport.ChunkTranscript, "inspect", "-", "--json")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Shape != "chunks" || len(report.Cues) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Policies["minimum"] != 1 || report.Policies["keep"] != 1 {
		t.Fatalf("unexpected policy counts %v", report.Policies)
	}
	if report.Cues[0].Reason != "punctuation" || report.Cues[1].Reason != "end_of_input" {
		t.Fatalf("unexpected flush reasons %+v", report.Cues)
	}
}

func TestInspectTable(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, testsupport.SegmentTranscript, "inspect", "-")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Shape: segments")
	requireContains(t, out, "First sentence.")
	requireContains(t, out, "00:00:02,500")
}

func TestValidateCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	good := testsupport.WriteFile(t, filepath.Join(env.baseDir, "good.srt"), chunkSRT)
	out, _, err := runCLI(t, env, "", "validate", good)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "no issues found")

	bad := testsupport.WriteFile(t, filepath.Join(env.baseDir, "bad.srt"),
		"2\n00:00:05,000 --> 00:00:04,000\nbackwards\n")
	out, _, err = runCLI(t, env, "", "validate", bad, "--duration", "100")
	if !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	requireContains(t, out, "index_gap")
	requireContains(t, out, "negative_duration")
	requireContains(t, out, "duration_mismatch")
}

func TestHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteTranscript(t, env.baseDir, "talk.json", testsupport.ChunkTranscript)
	if _, _, err := runCLI(t, env, "", "render", input); err != nil {
		t.Fatalf("render: %v", err)
	}

	out, _, err := runCLI(t, env, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "succeeded")
	requireContains(t, out, "chunks")

	out, _, err = runCLI(t, env, "", "history", "--json")
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	var runs []history.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 1 || runs[0].CueCount != 2 {
		t.Fatalf("unexpected runs %+v", runs)
	}

	out, _, err = runCLI(t, env, "", "history", "show", runs[0].ID[:8])
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Source:    "+input)

	out, _, err = runCLI(t, env, "", "history", "clear")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 1 run(s)")
}

func TestRenderNoHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, testsupport.WordTranscript, "render", "-", "--stdout", "--no-history"); err != nil {
		t.Fatalf("render: %v", err)
	}
	out, _, err := runCLI(t, env, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestRenderUsesConfiguredFormatAndFilter(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFormat("vtt"), testsupport.WithFilter(true))
	input := testsupport.WriteTranscript(t, env.baseDir, "credits.json", `{"chunks":[
		{"text":"Hello there.","timestamp":[0,1.5]},
		{"text":"Thank you.","timestamp":[60,61]},
		{"text":"Goodbye now.","timestamp":[120,121]}
	]}`)

	out, _, err := runCLI(t, env, "", "render", input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	target := filepath.Join(env.baseDir, "credits.vtt")
	requireContains(t, out, "Wrote 2 cues to "+target)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "WEBVTT\n\n1\n00:00:00.000 --> 00:00:01.500\nHello there.\n\n2\n00:02:00.000 --> 00:02:01.000\nGoodbye now.\n"
	if string(data) != want {
		t.Fatalf("unexpected subtitle content %q", data)
	}
}
