package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if testing.Short() {
		t.Skip("compiles binaries")
	}
	// 1. Create a temporary directory
	tempDir := t.TempDir()

	// 2. Create wacc-hello executable
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvConfig, EnvConfig, EnvCurrency, EnvCurrency, EnvLogLevel, EnvLogLevel)

	helloCmdPath := filepath.Join(tempDir, "wacc-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write wacc-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile wacc-hello: %v", err)
	}

	// 3. Compile the main wacc binary
	waccBinaryPath := filepath.Join(tempDir, "wacc")
	cmd = exec.Command("go", "build", "-o", waccBinaryPath, "../wacc")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile wacc binary: %v", err)
	}

	expectedConfig := filepath.Join(tempDir, "custom.toml")
	args := []string{
		"-config", expectedConfig,
		"-currency", "USD",
		"-log-level", "debug",
		"hello", // The extension subcommand
		"world",
	}

	waccCmd := exec.Command(waccBinaryPath, args...)
	waccCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	waccCmd.Stdout = &stdout
	waccCmd.Stderr = &stderr

	if err := waccCmd.Run(); err != nil {
		t.Fatalf("wacc command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, expectedLine := range []string{
		EnvConfig + "=" + expectedConfig,
		EnvCurrency + "=USD",
		EnvLogLevel + "=debug",
		"args=[world]",
	} {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}
}

func TestExtensionEnv(t *testing.T) {
	defer func(c, cur, lvl string) { *configFile, *currency, *logLevel = c, cur, lvl }(*configFile, *currency, *logLevel)

	*configFile, *currency, *logLevel = "a.toml", "", "info"
	got := extensionEnv([]string{"HOME=/home"})
	want := []string{"HOME=/home", EnvConfig + "=a.toml", EnvLogLevel + "=info"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("extensionEnv() = %v, want %v", got, want)
	}
}
