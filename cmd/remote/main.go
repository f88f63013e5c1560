// Package main is the terminal client for an AI Remote server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"airemote/internal/client"
	"airemote/internal/tui"
	"airemote/internal/version"
)

func main() {
	serverURL := flag.String("server", "http://localhost:7860", "base URL of the AI Remote server")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	endpoint := client.New(*serverURL)

	if _, err := tea.NewProgram(tui.New(endpoint, *serverURL)).Run(); err != nil {
		log.Fatalf("Failed to run terminal client: %v", err)
	}
}
