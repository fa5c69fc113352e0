package buildpipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
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

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) statuses(file string) []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Status
	for _, ev := range r.events {
		if ev.File == file {
			out = append(out, ev.Status)
		}
	}
	return out
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		src, outDir, base string
		want              string
	}{
		{"src/main.redux", "", "", "src/main.ais"},
		{"/p/src/main.redux", "/p/out", "/p", "/p/out/src/main.ais"},
		{"/elsewhere/x.redux", "/p/out", "/p", "/p/out/x.ais"},
	}
	for _, tc := range tests {
		if got := OutputPath(filepath.FromSlash(tc.src), filepath.FromSlash(tc.outDir), filepath.FromSlash(tc.base)); got != filepath.FromSlash(tc.want) {
			t.Errorf("OutputPath(%q, %q, %q) = %q, want %q", tc.src, tc.outDir, tc.base, got, tc.want)
		}
	}
}

func TestBuildWritesOutputs(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.redux")
	b := filepath.Join(root, "sub", "b.redux")
	writeFile(t, a, "x = 1")
	writeFile(t, b, "y = 2.0")

	rec := &recorder{}
	res, err := Build(context.Background(), &BuildRequest{
		Files:    []string{a, b},
		BaseDir:  root,
		OutDir:   filepath.Join(root, "out"),
		Jobs:     2,
		Progress: rec,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Units) != 2 || res.Failed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	got, err := os.ReadFile(filepath.Join(root, "out", "sub", "b.ais"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{\nfloat y = 2.0;\n}\n" {
		t.Fatalf("unexpected output %q", got)
	}
	st := rec.statuses("a.redux")
	if len(st) == 0 || st[0] != StatusQueued || st[len(st)-1] != StatusDone {
		t.Fatalf("unexpected statuses for a.redux: %v", st)
	}
	if !res.Timings.Has(StageParse) || !res.Timings.Has(StageWrite) {
		t.Fatal("expected parse and write timings")
	}
}

func TestBuildReportsFailures(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good.redux")
	bad := filepath.Join(root, "bad.redux")
	writeFile(t, good, "x = 1")
	writeFile(t, bad, "x = y")

	var out bytes.Buffer
	rec := &recorder{}
	res, err := Build(context.Background(), &BuildRequest{
		Files:    []string{good, bad},
		BaseDir:  root,
		Progress: rec,
		Stdout:   &out,
	})
	if !errors.Is(err, ErrUnitsFailed) {
		t.Fatalf("expected ErrUnitsFailed, got %v", err)
	}
	if res.Failed != 1 {
		t.Fatalf("expected one failed unit, got %d", res.Failed)
	}
	if out.String() != "{\nint x = 1;\n}\n" {
		t.Fatalf("unexpected stdout %q", out.String())
	}
	st := rec.statuses("bad.redux")
	if st[len(st)-1] != StatusError {
		t.Fatalf("unexpected statuses for bad.redux: %v", st)
	}
	if _, err := os.Stat(filepath.Join(root, "good.ais")); !os.IsNotExist(err) {
		t.Fatal("--stdout must not write files")
	}
}
