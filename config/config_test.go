package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "providers.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("TRANSPORT", "")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if e.Transport != TransportStdio {
		t.Errorf("Transport = %q, want stdio default", e.Transport)
	}
	if e.SlogLevel() != slog.LevelInfo {
		t.Errorf("SlogLevel = %v, want info default", e.SlogLevel())
	}
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		t.Setenv("TRANSPORT", "carrier-pigeon")
		if _, err := LoadEnv(); err == nil {
			t.Error("unknown transport should fail validation")
		}
	})
	t.Run("log level", func(t *testing.T) {
		t.Setenv("TRANSPORT", "stdio")
		t.Setenv("LOG_LEVEL", "loud")
		if _, err := LoadEnv(); err == nil {
			t.Error("unknown log level should fail validation")
		}
	})
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
default: memory
providers:
  - name: memory
    priority: 10
  - name: backend
    enabled: false
    endpoint: https://api.example.com
    credential: secret
`)
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Default != "memory" || len(f.Providers) != 2 {
		t.Errorf("file = %+v", f)
	}
	if !f.Providers[0].IsEnabled() {
		t.Error("absent enabled key should mean enabled")
	}
	if f.Providers[1].IsEnabled() {
		t.Error("enabled: false should disable the provider")
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: memory
    prioritee: 10
`)
	if _, err := LoadFile(path); err == nil {
		t.Error("misspelled keys should be rejected")
	}
}

func TestFileValidate(t *testing.T) {
	cases := []struct {
		name string
		file File
		want string
	}{
		{"no providers", File{}, "at least one"},
		{"bad name", File{Providers: []Provider{{Name: "Not-Valid"}}}, "must match"},
		{"duplicate name", File{Providers: []Provider{{Name: "a"}, {Name: "a"}}}, "duplicate"},
		{"unknown default", File{Default: "ghost", Providers: []Provider{{Name: "a"}}}, "not in the providers list"},
		{
			"all disabled",
			File{Providers: []Provider{{Name: "a", Enabled: boolPtr(false)}}},
			"disabled",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.file.Validate()
			if err == nil {
				t.Fatal("want validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should contain %q", err, tc.want)
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		f := File{Default: "memory", Providers: []Provider{{Name: "memory"}}}
		if err := f.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	})
}

func TestDefaultFile(t *testing.T) {
	if err := DefaultFile().Validate(); err != nil {
		t.Errorf("default configuration must validate: %v", err)
	}
}

func boolPtr(b bool) *bool { return &b }
