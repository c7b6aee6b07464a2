package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// animationExtensions are the input formats the tool accepts: plain
// Lottie JSON and gzip-wrapped Telegram stickers.
var animationExtensions = map[string]struct{}{
	".json": {},
	".tgs":  {},
}

// discoverInputs expands the command line arguments into a sorted list of
// animation files. A directory argument is walked recursively; a file
// argument must carry a supported extension.
func discoverInputs(args []string) ([]string, error) {
	var inputs []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !supportedExtension(arg) {
				return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(arg))
			}
			inputs = append(inputs, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supportedExtension(path) {
				inputs = append(inputs, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	sort.Strings(inputs)
	return inputs, nil
}

func supportedExtension(path string) bool {
	_, ok := animationExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// frameDirFor returns the per-input frame directory under base: the input
// file name without its extension.
func frameDirFor(base, input string) string {
	name := filepath.Base(input)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(base, name)
}
