package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand; anything else is the positional merge form
	switch command {
	case "merge":
		runMerge(ctx, os.Args[2:])
	case "inspect":
		runInspect(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		runMerge(ctx, os.Args[1:])
	}
}

func printUsage() {
	fmt.Println(`sbommerge - Merge two SPDX 2.3 documents into one

Usage:
  sbommerge <path1> <path2>
  sbommerge <command> [options]

Commands:
  merge    Merge two SPDX documents (default when given two paths)
  inspect  Summarize a single SPDX document
  verify   Verify the checksum or signature of a merged document

Use "sbommerge <command> --help" for more information about a command.`)
}

// parseInterspersed lets flags appear before, between or after positional arguments
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// "--" ends flag parsing for the remaining arguments
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if strings.EqualFold(f.Name, name) {
				set = true
			}
		}
	})
	return set
}
