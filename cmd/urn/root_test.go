package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(viper.New())
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmd_JSON(t *testing.T) {
	out, err := execute(t, "", "parse", "-o", "json", "urn:ISBN:A%2Fb?+r=1?=q=2&f#frag")
	if err != nil {
		t.Fatalf("urn parse error = %v, want nil", err)
	}

	var got []record
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v, want nil", out, err)
	}
	want := []record{{
		Input:        "urn:ISBN:A%2Fb?+r=1?=q=2&f#frag",
		URN:          "urn:ISBN:A%2fb?+r=1?=q=2&f#frag",
		NID:          "ISBN",
		NSS:          "A%2fb",
		NSSUnescaped: "A/b",
		Resolution:   []param{{"r", "1"}},
		Query:        []param{{"q", "2"}, {"f", ""}},
		Fragment:     "frag",
		Key:          "urn:isbn:a%2fb",
	}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("urn parse output mismatch\ndiff (-got +want):\n%v", diff)
	}
}

func TestParseCmd_YAMLFromStdin(t *testing.T) {
	out, err := execute(t, "urn:isbn:1\n\n  urn:uuid:6e8bc430-9c3a-11d9-9669-0800200c9a66  \n", "parse", "--output", "yaml")
	if err != nil {
		t.Fatalf("urn parse error = %v, want nil", err)
	}

	var got []record
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("yaml.Unmarshal(%q) error = %v, want nil", out, err)
	}
	if len(got) != 2 {
		t.Fatalf("urn parse returned %d records, want 2:\n%s", len(got), out)
	}
	if got[1].NID != "uuid" || got[1].NSS != "6e8bc430-9c3a-11d9-9669-0800200c9a66" {
		t.Errorf("second record = %+v, want uuid URN", got[1])
	}
}

func TestParseCmd_Text(t *testing.T) {
	out, err := execute(t, "", "parse", "urn:isbn:123?=k=v#f")
	if err != nil {
		t.Fatalf("urn parse error = %v, want nil", err)
	}
	for _, want := range []string{"urn:isbn:123?=k=v#f", "nid", "isbn", "query", "k=v", "fragment"} {
		if !strings.Contains(out, want) {
			t.Errorf("urn parse output %q does not contain %q", out, want)
		}
	}
}

func TestCheckCmd(t *testing.T) {
	out, err := execute(t, "", "check", "urn:isbn:1", "urn:urn:1", "urn:isbn:a%zz")
	if !errors.Is(err, errInvalidInput) {
		t.Errorf("urn check error = %v, want %v", err, errInvalidInput)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("urn check printed %d lines, want 3:\n%s", len(lines), out)
	}
	for i, want := range []string{"ok", "invalid", "invalid"} {
		if fields := strings.Fields(lines[i]); len(fields) < 2 || fields[1] != want {
			t.Errorf("line %d = %q, want status %q", i, lines[i], want)
		}
	}
}

func TestCheckCmd_ModeFromEnv(t *testing.T) {
	t.Setenv("URN_MODE", "unescaped")

	out, err := execute(t, "", "check", "urn:isbn:a b")
	if err != nil {
		t.Fatalf("urn check error = %v, want nil, output %q", err, out)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("urn check output = %q, want ok", out)
	}
}

func TestNormalizeCmd(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"canonical", []string{"normalize", "urn:ISBN:A%2Fb?+?=k=#"}, "urn:ISBN:A%2fb?=k\n"},
		{"unescaped", []string{"normalize", "--unescaped", "urn:isbn:a%20b"}, "urn:isbn:a b\n"},
		{"components", []string{"normalize", "--components", "nid|nss", "urn:isbn:1#f"}, "isbn:1\n"},
		{"unescaped mode input", []string{"normalize", "--mode", "unescaped", "urn:isbn:a b", "urn:isbn:c"}, "urn:isbn:a%20b\nurn:isbn:c\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := execute(t, "", c.args...)
			if err != nil {
				t.Fatalf("urn %v error = %v, want nil", c.args, err)
			}
			if out != c.want {
				t.Errorf("urn %v output = %q, want %q", c.args, out, c.want)
			}
		})
	}
}

func TestRootCmd_Config(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "urn.yaml")
	if err := os.WriteFile(cfg, []byte("mode: unescaped\noutput: json\n"), 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v, want nil", err)
	}

	out, err := execute(t, "", "parse", "--config", cfg, "urn:isbn:a b")
	if err != nil {
		t.Fatalf("urn parse error = %v, want nil", err)
	}
	var got []record
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v, want nil", out, err)
	}
	if len(got) != 1 || got[0].NSS != "a%20b" {
		t.Errorf("urn parse output = %+v, want NSS a%%20b", got)
	}
}

func TestRootCmd_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"bad mode", []string{"check", "--mode", "raw", "urn:isbn:1"}},
		{"bad output", []string{"check", "-o", "xml", "urn:isbn:1"}},
		{"bad log level", []string{"check", "--log-level", "loud", "urn:isbn:1"}},
		{"bad components", []string{"normalize", "--components", "path", "urn:isbn:1"}},
		{"missing config", []string{"check", "--config", "/nonexistent/urn.yaml", "urn:isbn:1"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := execute(t, "", c.args...); !errors.Is(err, errUsage) {
				t.Errorf("urn %v error = %v, want %v", c.args, err, errUsage)
			}
		})
	}
}
