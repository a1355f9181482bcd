package cmdutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteOutput writes data to path, or to stdout when path is empty.
func WriteOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output; %w", err)
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(stdout)
		}
		return nil
	}

	resolved, err := ResolvePath(path)
	if err != nil {
		return fmt.Errorf("failed to resolve output path; %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return fmt.Errorf("failed to create output directory; %w", err)
	}
	if err := os.WriteFile(resolved, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s; %w", resolved, err)
	}
	return nil
}

// ResolveRoot resolves the optional path argument of a command, defaulting
// to the working directory, and checks that it exists.
func ResolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	resolved, err := ResolvePath(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q; %w", root, err)
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", fmt.Errorf("cannot access %s; %w", resolved, err)
	}
	return resolved, nil
}
