package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pincell = "../../examples/pincell.charm"

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setup.charm")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "check", pincell)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "8 surfaces, 3 cells") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	for _, name := range []string{"fuel-or", "clad-or", "water"} {
		if !strings.Contains(out, name) {
			t.Errorf("output should mention %q:\n%s", name, out)
		}
	}
}

func TestCheckReportsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `(defsurface "s" (x-plane 1)`, "setup.charm"},
		{"validation", `(defcell "c" (below (z-cylinder :radius 0)))`, "radius must be positive"},
		{"builtin", `(surf "nowhere")`, "no surface named"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "check", writeScript(t, tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestCheckPrintsWarnings(t *testing.T) {
	path := writeScript(t, `(defsurface "spare" (x-plane 3))
(defcell "half" (above (x-plane 0)))`)
	_, errOut, err := execute(t, "check", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(errOut, "spare") {
		t.Errorf("expected a warning about the unused surface, got %q", errOut)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		x, want string
	}{
		{"0", "fuel"},
		{"0.42", "clad"},
		{"0.6", "water"},
		{"5", "(none)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out, _, err := execute(t, "locate", pincell, tt.x, "0", "0")
			if err != nil {
				t.Fatalf("locate: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("locate x=%s = %q, want %q", tt.x, got, tt.want)
			}
		})
	}
}

func TestLocateBadCoordinate(t *testing.T) {
	if _, _, err := execute(t, "locate", pincell, "zero", "0", "0"); err == nil {
		t.Fatal("expected an error for a non-numeric coordinate")
	}
}

func TestTrack(t *testing.T) {
	out, _, err := execute(t, "track", pincell, "0", "0", "0", "2", "0", "0")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 segments, got:\n%s", out)
	}
	for i, name := range []string{"fuel", "clad", "water"} {
		if !strings.HasPrefix(lines[i+1], name) {
			t.Errorf("segment %d = %q, want cell %s", i, lines[i+1], name)
		}
	}
	if !strings.Contains(lines[1], "0.39") {
		t.Errorf("fuel segment should be 0.39 long: %q", lines[1])
	}
}

func TestTrackZeroDirection(t *testing.T) {
	if _, _, err := execute(t, "track", pincell, "0", "0", "0", "0", "0", "0"); err == nil {
		t.Fatal("expected an error for a zero direction")
	}
}

func TestMesh(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"cellName":"fuel"`},
		{"yaml", "cellName: fuel"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "meshes."+tt.format)
			if _, _, err := execute(t, "mesh", pincell, "--format", tt.format, "-o", path); err != nil {
				t.Fatalf("mesh: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s output does not contain %q", tt.format, tt.want)
			}
		})
	}
}

func TestMeshUnknownFormat(t *testing.T) {
	path := writeScript(t, `(preview-bounds :mesh-cells 8) (defcell "c" (above (x-plane 0)))`)
	if _, _, err := execute(t, "mesh", path, "--format", "obj"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
