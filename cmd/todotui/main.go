package main

import (
	"flag"
	"fmt"
	"os"

	"todo-guard/cmd/todotui/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8000", "todo service base URL")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(*server), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "todotui:", err)
		os.Exit(1)
	}
}
