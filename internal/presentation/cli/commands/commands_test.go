package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jbctechsolutions/gzio/internal/infrastructure/testutil"
)

// executeCommand executes a cobra command with the given args.
func executeCommand(root *cobra.Command, args ...string) error {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	return root.Execute()
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd == nil {
		t.Fatal("NewRootCmd returned nil")
	}

	if cmd.Use != "gzio" {
		t.Errorf("expected Use='gzio', got %q", cmd.Use)
	}

	// Check key subcommands exist
	wantSubcmds := []string{"version", "cat", "pack", "watch"}
	subcmds := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcmds[sub.Name()] = true
	}

	for _, want := range wantSubcmds {
		if !subcmds[want] {
			t.Errorf("missing subcommand: %s", want)
		}
	}

	// Check persistent flags
	wantFlags := []string{"config", "output", "verbose"}
	for _, flag := range wantFlags {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag: %s", flag)
		}
	}
}

func TestVersionCmd_NoError(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"basic", []string{"version"}, false},
		{"short", []string{"version", "--short"}, false},
		{"json", []string{"version", "-o", "json"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			err := executeCommand(cmd, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPackCmd_TextInputs(t *testing.T) {
	dir := testutil.TempDir(t)
	in1 := testutil.WriteFile(t, dir, "part1.txt", "L1\n")
	in2 := testutil.WriteFile(t, dir, "part2.txt", "L2\n")
	out := filepath.Join(dir, "combined.txt.gz")

	testutil.AssertNoError(t, executeCommand(NewRootCmd(), "pack", out, in1, in2))

	// Inputs are concatenated with no separator inserted.
	testutil.AssertEqual(t, testutil.ReadGzFile(t, out), "L1\nL2\n")
}

func TestPackCmd_JSONNormalizes(t *testing.T) {
	dir := testutil.TempDir(t)
	in := testutil.WriteFile(t, dir, "pretty.json", "{\n  \"k\": \"v\",\n  \"n\": 1\n}\n")
	out := filepath.Join(dir, "compact.json.gz")

	testutil.AssertNoError(t, executeCommand(NewRootCmd(), "pack", "--json", out, in))

	testutil.AssertEqual(t, testutil.ReadGzFile(t, out), `{"k":"v","n":1}`)
}

func TestPackCmd_JSONRejectsInvalid(t *testing.T) {
	dir := testutil.TempDir(t)
	in := testutil.WriteFile(t, dir, "broken.json", "{not json")
	out := filepath.Join(dir, "out.json.gz")

	err := executeCommand(NewRootCmd(), "pack", "--json", out, in)
	testutil.AssertError(t, err)
	if !strings.Contains(err.Error(), "not valid JSON") {
		t.Errorf("error = %v, want invalid-JSON message", err)
	}
}

func TestPackCmd_MissingInput(t *testing.T) {
	dir := testutil.TempDir(t)
	out := filepath.Join(dir, "out.txt.gz")

	if err := executeCommand(NewRootCmd(), "pack", out, filepath.Join(dir, "nope.txt")); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestCatCmd_MissingFile(t *testing.T) {
	dir := testutil.TempDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{"text", []string{"cat", filepath.Join(dir, "nope.txt.gz")}},
		{"json", []string{"cat", "--json", filepath.Join(dir, "nope.json.gz")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := executeCommand(NewRootCmd(), tt.args...); err == nil {
				t.Error("expected error for missing file")
			}
		})
	}
}

func TestCatCmd_ValidFile(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.WriteGzFile(t, dir, "greeting.txt.gz", "hello\n")

	if err := executeCommand(NewRootCmd(), "cat", path); err != nil {
		t.Errorf("cat error = %v", err)
	}
}

func TestCatCmd_RequiresOneArg(t *testing.T) {
	if err := executeCommand(NewRootCmd(), "cat"); err == nil {
		t.Error("expected error when no file is given")
	}
}
