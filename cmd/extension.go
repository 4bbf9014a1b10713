package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// RunExtension attempts to find and execute an external wacc-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "wacc-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	// Found external command, execute it
	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv(os.Environ())

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		// If it's not an ExitError or we can't get the status, report a generic error
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)

		return true, 1 // Indicate that an attempt was made, but it failed
	}

	return true, 0 // External command executed successfully with exit code 0
}

// extensionEnv passes the global flags as environment variables. Flags left
// empty do not override the inherited environment.
func extensionEnv(env []string) []string {
	env = append(env, EnvConfig+"="+configPath())
	if *currency != "" {
		env = append(env, EnvCurrency+"="+*currency)
	}
	if *logLevel != "" {
		env = append(env, EnvLogLevel+"="+*logLevel)
	}
	return env
}
