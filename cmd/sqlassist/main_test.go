// Package main provides tests for the sqlassist CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlassist/internal/cli"
	"github.com/leapstack-labs/sqlassist/internal/cli/config"
	"github.com/leapstack-labs/sqlassist/internal/cli/testutil"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "sqlassist v") {
		t.Errorf("version output should contain 'sqlassist v', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"validate", "complete", "context", "parse", "schema", "rules", "dialects", "watch", "shell"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	config.ResetConfig()
	p := testutil.SetupTestProject(t)

	tests := []struct {
		name    string
		file    string
		wantErr bool
		want    string
	}{
		{name: "valid query", file: "valid.sql", want: "No issues found"},
		{name: "unknown table", file: "unknown.sql", wantErr: true, want: "customers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			cmd := cli.NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{
				"validate", p.Queries[tt.file],
				"--config", p.Config,
				"--output", "markdown",
			})

			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate error = %v, wantErr %v\noutput: %s", err, tt.wantErr, buf.String())
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("validate output should contain %q, got: %s", tt.want, buf.String())
			}
		})
	}
}
