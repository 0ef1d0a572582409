package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

// unsetenv removes key from the environment for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

// resetFlags restores the global flags to their default at the end of the test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		for name := range envFlags {
			f := flag.Lookup(name)
			f.Value.Set(f.DefValue)
		}
	})
}

func TestApplyEnv_DotEnv(t *testing.T) {
	for _, key := range []string{EnvDataDir, EnvRegistryURL, EnvUG, EnvVerbose} {
		unsetenv(t, key)
	}
	resetFlags(t)

	file := filepath.Join(t.TempDir(), ".env")
	content := EnvDataDir + "=/from/dotenv\n" + EnvUG + "=158148\n" + EnvVerbose + "=true\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := godotenv.Load(file); err != nil {
		t.Fatalf("godotenv.Load() error = %v", err)
	}
	if err := ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if *dataDir != "/from/dotenv" {
		t.Errorf("-data-dir = %q, want %q", *dataDir, "/from/dotenv")
	}
	if *ug != "158148" {
		t.Errorf("-ug = %q, want %q", *ug, "158148")
	}
	if !*Verbose {
		t.Errorf("-v = false, want true")
	}
	if want := flag.Lookup("registry-url").DefValue; *registryURL != want {
		t.Errorf("-registry-url = %q, want the default %q", *registryURL, want)
	}
}

func TestApplyEnv_KeepsExplicitFlag(t *testing.T) {
	resetFlags(t)
	t.Setenv(EnvDataDir, "/from/env")
	if err := flag.Set("data-dir", "/from/flag"); err != nil {
		t.Fatal(err)
	}
	if err := ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if *dataDir != "/from/flag" {
		t.Errorf("-data-dir = %q, want %q", *dataDir, "/from/flag")
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	resetFlags(t)
	t.Setenv(EnvVerbose, "maybe")
	if err := ApplyEnv(); err == nil {
		t.Error("ApplyEnv() error = nil, want an error on a non boolean verbose")
	}
}
