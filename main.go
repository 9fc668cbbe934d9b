package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleyapp/parley/internal/directory"
	"github.com/parleyapp/parley/internal/logger"
	"github.com/parleyapp/parley/internal/session"
	"github.com/parleyapp/parley/internal/store"
	"github.com/parleyapp/parley/internal/timeline"
	"github.com/parleyapp/parley/internal/ui"
)

const version = "1.0.0"

func main() {
	rosterDir := ""
	logPath := logger.DefaultPath()
	seed := time.Now().UnixNano()

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "version", "-v", "--version":
			fmt.Printf("Parley v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		case "init-roster":
			i++
			if i >= len(args) {
				fmt.Println("init-roster requires a directory")
				os.Exit(1)
			}
			if err := directory.WriteDefault(args[i]); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote default roster to %s\n", args[i])
			return
		case "--roster":
			i++
			if i >= len(args) {
				fmt.Println("--roster requires a directory")
				os.Exit(1)
			}
			rosterDir = args[i]
		case "--log":
			i++
			if i >= len(args) {
				fmt.Println("--log requires a file path")
				os.Exit(1)
			}
			logPath = args[i]
		case "--seed":
			i++
			if i >= len(args) {
				fmt.Println("--seed requires a number")
				os.Exit(1)
			}
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Printf("Invalid seed: %s\n", args[i])
				os.Exit(1)
			}
			seed = n
		default:
			fmt.Printf("Unknown command: %s\n", args[i])
			printHelp()
			os.Exit(1)
		}
	}

	log, err := logger.New(logPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dir := directory.Default()
	if rosterDir != "" {
		dir, err = directory.Load(rosterDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	st, err := store.Open(dir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	gen := timeline.NewGenerator(rand.New(rand.NewSource(seed)), nil)
	if err := st.SeedAll(gen); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctrl := session.New(dir, st, log, nil)

	initialModel := ui.NewLoginModel(dir, ctrl)
	p := tea.NewProgram(initialModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `Parley - Terminal Chat Client

Usage:
  parley                 Start the chat client
  parley version         Show version information
  parley help            Show this help message
  parley init-roster DIR Write the built-in roster to DIR as editable YAML files
  parley --roster DIR    Load the contact roster from a directory of YAML files
  parley --log FILE      Write the debug log to FILE (default ~/.parley/parley.log)
  parley --seed N        Seed the demo conversation generator

Login:
  ↑/↓ or j/k        Navigate identities
  enter             Log in as the selected identity
  /                 Filter identities
  q                 Quit

Chat:
  ↑/↓ or j/k        Navigate contacts
  enter             Open the selected conversation
  /                 Search contacts
  n or c            Compose a message
  ctrl+s            Send message (while composing)
  esc               Cancel / log out
  q                 Quit
  ctrl+c            Force quit

Roster Storage:
  Rosters are YAML files, one entity per file, with an id, a name, a kind
  (individual or group), and members for groups. Without --roster, or with a
  missing or empty roster directory, a built-in demo roster is used.

Notes:
  - Conversations are seeded with demo history and live in memory only
  - Logging out keeps conversations; quitting discards them
`
	fmt.Print(help)
}
