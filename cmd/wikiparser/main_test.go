package main

import (
	"bytes"
	"strings"
	"testing"

	"wikiparser/pkg/version"
)

func TestVersionSubcommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version subcommand failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version.Version {
		t.Errorf("output = %q, want %q", got, version.Version)
	}
}
