package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrigsby/taskden/internal/db"
	"github.com/kgrigsby/taskden/internal/logging"
	"github.com/kgrigsby/taskden/internal/models"
	"github.com/kgrigsby/taskden/internal/store"
	"github.com/kgrigsby/taskden/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	dataDir := flag.String("data-dir", "", "override the data directory")
	flag.Parse()

	if *showVersion {
		fmt.Printf("taskden %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	dir := *dataDir
	if dir == "" {
		var err error
		dir, err = db.DefaultDataDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
			os.Exit(1)
		}
	}

	logFile, err := logging.Setup(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	registry := store.NewUserRegistry()

	// Persistence failures are never fatal: an unusable database just means
	// an empty session that cannot save.
	database, err := db.New(dir)
	if err != nil {
		slog.Warn("could not open database, starting empty", "error", err)
		database = nil
	}

	var saver store.TaskSaver
	if database != nil {
		saver = database

		if users, err := database.LoadUsers(); err != nil {
			slog.Warn("could not load users, starting empty", "error", err)
		} else {
			registry.Restore(users)
		}
	}
	tasks := store.NewTaskStore(saver)
	if database != nil {
		if loaded, err := database.LoadTasks(); err != nil {
			slog.Warn("could not load tasks, starting empty", "error", err)
		} else {
			tasks.Restore(loaded)
		}
	}

	// First run: seed a default admin so the operator can log in at all.
	if registry.Len() == 0 {
		if _, err := registry.Add("admin", "admin", models.RoleAdmin); err != nil {
			slog.Error("failed to seed default admin", "error", err)
		} else {
			slog.Warn("seeded default admin account", "username", "admin")
		}
	}

	app := ui.NewApp(registry, tasks, database)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
