package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tatianab/farmswap/internal/config"
	"github.com/tatianab/farmswap/internal/save"
	"github.com/tatianab/farmswap/internal/swap"
	"github.com/tatianab/farmswap/internal/tui"
	"github.com/tatianab/farmswap/internal/xmldoc"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	dir := cfg.SaveDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if dir == "" {
		fmt.Fprintln(os.Stderr, "Usage: farmswap <save-directory>")
		os.Exit(1)
	}

	path, err := save.Locate(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	data, err := save.Read(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading save: %v\n", err)
		os.Exit(2)
	}

	doc, err := xmldoc.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing save: %v\n", err)
		os.Exit(3)
	}

	host, err := swap.Host(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}
	farmhands, err := swap.List(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}

	result, err := tui.Run(doc, host, farmhands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(3)
	}
	if result == nil {
		fmt.Println("Nothing changed.")
		return
	}

	// Serialize before touching anything on disk.
	if cfg.PrettyXML {
		doc.Indent(4)
	}
	out, err := doc.Serialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing save: %v\n", err)
		os.Exit(3)
	}

	if !cfg.NoBackup {
		backup, err := save.Backup(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error backing up save: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Original saved to %s\n", backup)
	}

	if err := save.Write(path, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing save: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("All done! %s (%d) is now the host; %s (%d) is a farmhand.\n",
		result.NewHost.Name, result.NewHost.ID,
		result.OldHost.Name, result.OldHost.ID)
}
