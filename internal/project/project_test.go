package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/parser"
	"redux/internal/source"
	"redux/internal/types"
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

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("expected a project root, got ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestName)
	writeFile(t, path, `[package]
name = "bots"

[build]
sources = ["src", "extra.redux"]
out_dir = "out"
jobs = 2
cache = false

[globals]
enemy = "object"
limit = "int"
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Name != "bots" || m.Jobs != 2 || m.Cache {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if m.OutDir != filepath.Join(root, "out") {
		t.Fatalf("out dir = %q", m.OutDir)
	}
	if len(m.Sources) != 2 || m.Sources[0] != filepath.Join(root, "src") {
		t.Fatalf("sources = %v", m.Sources)
	}
	if m.Globals["enemy"] != types.Object || m.Globals["limit"] != types.Int {
		t.Fatalf("globals = %v", m.Globals)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"no package", "[build]\nsources = [\"a.redux\"]\n", ErrPackageSectionMissing},
		{"no sources", "[package]\nname = \"x\"\n", ErrNoSources},
		{"bad global", "[package]\n[build]\nsources = [\"a\"]\n[globals]\ns = \"string\"\n", ErrBadGlobal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tc.content)
			if _, err := LoadManifest(path); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestExpandSources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "b.redux"), "")
	writeFile(t, filepath.Join(root, "src", "a.redux"), "")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "")
	single := filepath.Join(root, "src", "a.redux")
	got, err := ExpandSources([]string{filepath.Join(root, "src"), single})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != single || got[1] != filepath.Join(root, "src", "b.redux") {
		t.Fatalf("unexpected sources %v", got)
	}
}

func TestRequirePath(t *testing.T) {
	tests := []struct{ in, dir, want string }{
		{"lib", "/p", "/p/lib.redux"},
		{"lib.redux", "/p", "/p/lib.redux"},
		{"../x/lib", "/p/q", "/p/x/lib.redux"},
		{"/abs/lib", "/p", "/abs/lib.redux"},
	}
	for _, tc := range tests {
		if got := RequirePath(tc.in, tc.dir); got != filepath.FromSlash(tc.want) {
			t.Errorf("RequirePath(%q, %q) = %q, want %q", tc.in, tc.dir, got, tc.want)
		}
	}
}

func resolveMain(t *testing.T, mainPath string) (*ast.Block, *diag.Bag, *Requires) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(mainPath)
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(32)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseSource(fs.Get(id), rep, 0)
	req := NewRequires(fs, rep, 0)
	req.Resolve(res.Program, fs.Get(id))
	return res.Program, bag, req
}

func TestRequireSplicesOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "math.redux"), "require \"util\"\ndef sq(a) return a * a end\n")
	writeFile(t, filepath.Join(root, "lib", "util.redux"), "require \"math\"\nenum Mode idle busy end\n")
	main := filepath.Join(root, "main.redux")
	writeFile(t, main, "require \"lib/math\"\nrequire \"lib/math.redux\"\nx = sq(2)\n")

	prog, bag, req := resolveMain(t, main)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	kinds := make([]ast.StmtKind, 0, len(prog.Stmts))
	for _, s := range prog.Stmts {
		kinds = append(kinds, s.Kind)
	}
	want := []ast.StmtKind{ast.StmtEnumDef, ast.StmtFuncDef, ast.StmtAssign}
	if len(kinds) != len(want) {
		t.Fatalf("statements = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("statements = %v, want %v", kinds, want)
		}
	}
	if len(req.Files()) != 2 {
		t.Fatalf("expected 2 required files, got %d", len(req.Files()))
	}
}

func TestRequireRejectsTopLevelCode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad.redux"), "x = 1\ndef f() end\n")
	main := filepath.Join(root, "main.redux")
	writeFile(t, main, "require \"bad\"\n")
	_, bag, _ := resolveMain(t, main)
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.ProjRequireTopLevel {
		t.Fatalf("expected one top-level diagnostic, got %v", items)
	}
}

func TestRequireMissingFile(t *testing.T) {
	main := filepath.Join(t.TempDir(), "main.redux")
	writeFile(t, main, "require \"nowhere\"\n")
	prog, bag, _ := resolveMain(t, main)
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.ProjRequireNotFound {
		t.Fatalf("expected a not-found diagnostic, got %v", items)
	}
	if len(prog.Stmts) != 0 {
		t.Fatalf("require statement should be removed, got %d statements", len(prog.Stmts))
	}
}

func TestCombineDependsOnOrder(t *testing.T) {
	a, b := Digest{1}, Digest{2}
	if Combine("v", a, b) == Combine("v", b, a) {
		t.Fatal("digest must depend on order")
	}
	if Combine("v1", a) == Combine("v2", a) {
		t.Fatal("digest must depend on the salt")
	}
}
