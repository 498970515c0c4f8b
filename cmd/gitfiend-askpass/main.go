// Command gitfiend-askpass is the GIT_ASKPASS helper the runner
// points the underlying VCS at. It answers username/password prompts
// from GITFIEND_USERNAME/GITFIEND_PASSWORD when set, and otherwise
// falls back to an interactive prompt so a credential failure surfaces
// to whoever is sitting at the terminal rather than hanging forever.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

func main() {
	prompt := strings.Join(os.Args[1:], " ")
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "username"):
		if v := os.Getenv("GITFIEND_USERNAME"); v != "" {
			fmt.Println(v)
			return
		}
		fmt.Println(readLine(prompt))
	case strings.Contains(lower, "password"):
		if v := os.Getenv("GITFIEND_PASSWORD"); v != "" {
			fmt.Println(v)
			return
		}
		fmt.Println(readLine(prompt))
	default:
		// Unrecognized prompt shape: answer empty rather than block the
		// child process indefinitely.
		fmt.Println("")
	}
}

// readLine prompts on the terminal the same way repotool.go's input()
// helper does, since an askpass invocation is itself a small
// interactive prompt.
func readLine(prompt string) string {
	rl, err := readline.New(prompt + " ")
	if err != nil {
		return ""
	}
	defer rl.Close()
	line, _ := rl.Readline()
	return line
}
