package telemetry

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptConsent asks the user, on a real terminal only, whether to enable
// telemetry, and records the answer. In non-interactive runs (CI, piped
// input) it defaults to disabled without prompting.
func PromptConsent(cfg *Config) bool {
	if !isInteractive() {
		cfg.Disable()
		return false
	}

	fmt.Println()
	fmt.Println("archfit can send anonymous usage telemetry: command duration,")
	fmt.Println("success or failure, OS, architecture, and archfit version only.")
	fmt.Println("No catalog, application context,")
	fmt.Println("or scoring result is ever collected.")
	fmt.Print("Enable anonymous telemetry? [y/N] ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		cfg.Disable()
		return false
	}

	input = strings.TrimSpace(strings.ToLower(input))
	if input == "y" || input == "yes" {
		cfg.Enable()
		return true
	}
	cfg.Disable()
	return false
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
