package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"redux/internal/diag"
	"redux/internal/diagfmt"
	"redux/internal/token"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCompileSourceOutput(t *testing.T) {
	res := CompileSource(context.Background(), "main.redux", []byte("a = 1 + 1"), nil)
	if res.Failed() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if got, want := string(res.Output), "{\nint a = (1+1);\n}\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSyntaxErrorHaltsPipeline(t *testing.T) {
	res := CompileSource(context.Background(), "main.redux", []byte("a = 1 +"), nil)
	if !res.Failed() {
		t.Fatal("expected syntax error")
	}
	if res.Output != nil {
		t.Fatalf("no output expected after syntax errors, got %q", res.Output)
	}
	for _, d := range res.Bag.Items() {
		if !strings.HasPrefix(d.Code.ID(), "SYN") {
			t.Fatalf("unexpected diagnostic %s: %s", d.Code.ID(), d.Message)
		}
	}
}

func TestSemanticErrorDiagnostic(t *testing.T) {
	res := CompileSource(context.Background(), "main.redux", []byte("a = 1\nb = c"), nil)
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected one diagnostic, got %v", items)
	}
	if items[0].Code != diag.SemaUndefinedVariable {
		t.Fatalf("got code %s", items[0].Code.ID())
	}
	var buf bytes.Buffer
	if err := diagfmt.Short(&buf, res.Bag, res.FileSet); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "main.redux:2: ") {
		t.Fatalf("unexpected short form %q", buf.String())
	}
	if res.Output != nil {
		t.Fatal("no output expected after a semantic error")
	}
}

func TestStages(t *testing.T) {
	src := []byte("def f(a) return a end x = f(1)")
	parsed := CompileSource(context.Background(), "s", src, &Options{Stage: StageParse})
	if parsed.Failed() || parsed.Program == nil || parsed.Output != nil {
		t.Fatalf("parse stage: failed=%v output=%q", parsed.Failed(), parsed.Output)
	}
	analyzed := CompileSource(context.Background(), "s", src, &Options{Stage: StageAnalyze})
	if analyzed.Failed() || analyzed.Output != nil || analyzed.Temps != 0 {
		t.Fatalf("analyze stage: failed=%v output=%q temps=%d", analyzed.Failed(), analyzed.Output, analyzed.Temps)
	}
	full := CompileSource(context.Background(), "s", src, nil)
	if full.Temps != 1 {
		t.Fatalf("expected one temporary, got %d", full.Temps)
	}
}

func TestCacheHit(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "main.redux")
	writeFile(t, path, "x = 2 * 3\nsay(x)\n")

	opts := &Options{Cache: cache}
	first, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || first.Failed() {
		t.Fatalf("first compile: cached=%v diags=%v", first.Cached, first.Bag.Items())
	}
	second, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(first.Output, second.Output) {
		t.Fatalf("cached output differs: %q vs %q", first.Output, second.Output)
	}

	writeFile(t, path, "x = 2 * 4\nsay(x)\n")
	third, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatal("edited source must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, err := Compile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Cached {
		t.Fatal("expected miss after DropAll")
	}
}

func TestCacheKeyCoversRequiredFiles(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	lib := filepath.Join(dir, "lib.redux")
	main := filepath.Join(dir, "main.redux")
	writeFile(t, lib, "def sq(a) return a * a end\n")
	writeFile(t, main, "require \"lib\"\nx = sq(3)\n")

	opts := &Options{Cache: cache}
	first, err := Compile(context.Background(), main, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Failed() {
		t.Fatalf("unexpected diagnostics: %v", first.Bag.Items())
	}
	if !strings.Contains(string(first.Output), "int x = __retval0;") {
		t.Fatalf("required function not inlined:\n%s", first.Output)
	}

	writeFile(t, lib, "def sq(a) return a * a * a end\n")
	second, err := Compile(context.Background(), main, opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.Cached {
		t.Fatal("changing a required file must miss the cache")
	}
	if bytes.Equal(first.Output, second.Output) {
		t.Fatal("expected different output after editing the required file")
	}
}

func TestCompileFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "a.redux"),
		filepath.Join(dir, "b.redux"),
		filepath.Join(dir, "missing.redux"),
		filepath.Join(dir, "c.redux"),
	}
	writeFile(t, paths[0], "a = 1")
	writeFile(t, paths[1], "b = 2.5")
	writeFile(t, paths[3], "c = d")

	results, err := CompileFiles(context.Background(), paths, &Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Fatalf("result %d is for %s", i, res.Path)
		}
	}
	if got := string(results[0].Output); got != "{\nint a = 1;\n}\n" {
		t.Fatalf("a: %q", got)
	}
	if got := string(results[1].Output); got != "{\nfloat b = 2.5;\n}\n" {
		t.Fatalf("b: %q", got)
	}
	if items := results[2].Bag.Items(); len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("missing file: %v", items)
	}
	if !results[3].Failed() {
		t.Fatal("c should fail with an undefined variable")
	}
}

func TestPhaseObserverAndTimings(t *testing.T) {
	var (
		mu     sync.Mutex
		events []PhaseEvent
	)
	opts := &Options{
		EnableTimings: true,
		PhaseObserver: func(ev PhaseEvent) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	}
	res := CompileSource(context.Background(), "t.redux", []byte("x = 1"), opts)
	if res.Failed() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	want := []string{PhaseParse, PhaseRequire, PhaseAnalyze, PhaseInline, PhaseEmit}
	if len(events) != 2*len(want) {
		t.Fatalf("got %d events", len(events))
	}
	for i, name := range want {
		start, end := events[2*i], events[2*i+1]
		if start.Name != name || start.Status != PhaseStart || end.Name != name || end.Status != PhaseEnd {
			t.Fatalf("phase %d: %+v %+v", i, start, end)
		}
	}
	if res.Timing == nil || len(res.Timing.Phases) != len(want) {
		t.Fatalf("unexpected timing report %+v", res.Timing)
	}
	emit := res.Timing.Phases[len(want)-1]
	if len(emit.Counts) != 1 || emit.Counts[0].Key != "bytes" || emit.Counts[0].N != len(res.Output) {
		t.Fatalf("emit pass should count its output: %+v", emit)
	}
	var found bool
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a timings diagnostic")
	}
}

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tok.redux")
	writeFile(t, path, "x = 1")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if n := len(res.Tokens); n != 4 || res.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("unexpected tokens %v", res.Tokens)
	}
	if _, err := Tokenize(filepath.Join(t.TempDir(), "nope.redux"), 10); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
