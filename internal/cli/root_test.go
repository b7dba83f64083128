package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// resetFlags clears global flag state left by earlier commands.
func resetFlags(t *testing.T) {
	t.Helper()
	flagFormat, flagServer, flagBasePath = "text", "", ""
	t.Cleanup(func() { flagFormat, flagServer, flagBasePath = "text", "", "" })
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, sub := range []string{"serve", "list", "add", "remove", "status", "config", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help missing %q command", sub)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	for _, name := range []string{"server", "base-path"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "comments "+Version+" (") {
		t.Errorf("output = %q, want comments %s", out, Version)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := executeCommand("version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got["version"] != Version {
		t.Errorf("version = %q, want %q", got["version"], Version)
	}
	if got["go"] == "" {
		t.Error("expected go version")
	}
}
