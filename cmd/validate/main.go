// Package main provides the content checker: it loads a content tree the
// way the game does and reports every problem it finds.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rasaratnakara/content"
	"github.com/cory-johannsen/rasaratnakara/internal/scripting"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run validates the content named by args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags.SetOutput(stderr)
	contentDir := flags.String("content", "", "content directory; empty = embedded content")
	scriptDir := flags.String("scripts", "", "Lua script directory; empty = the content tree's scripts")
	strict := flags.Bool("strict", false, "treat unusable exits as errors")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	start := time.Now()
	bundle, err := content.Load(*contentDir)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	failed := false
	for _, p := range content.CheckEntries(bundle.World) {
		label := "warning"
		if *strict {
			label = "error"
			failed = true
		}
		fmt.Fprintf(stderr, "%s: %s\n", label, p)
	}

	var scriptFS fs.FS = bundle.Scripts
	if *scriptDir != "" {
		scriptFS = os.DirFS(*scriptDir)
	}
	scopes := 0
	if scriptFS != nil {
		mgr := scripting.NewManager(0, zap.NewNop())
		defer mgr.Close()
		loaded, err := content.LoadScripts(mgr, scriptFS, zap.NewNop())
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		scopes = len(loaded)
	}

	if failed {
		return 1
	}
	fmt.Fprintf(stdout, "ok: %d rooms, %d items, %d recipes, %d hints, %d script scopes (%s)\n",
		bundle.World.RoomCount(),
		len(bundle.Items.AllItems()),
		len(bundle.Recipes.Recipes()),
		bundle.Hints.Len(),
		scopes,
		time.Since(start).Round(time.Millisecond),
	)
	return 0
}
