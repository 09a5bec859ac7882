// Package walk enumerates candidate files below a root directory.
package walk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/monochromegane/go-gitignore"
)

const ignoreFileName = ".gitignore"

// Options tunes enumeration.
type Options struct {
	// Hidden includes dot-files and dot-directories (.git is always skipped).
	Hidden bool
	// NoIgnore disables .gitignore handling.
	NoIgnore bool
	// Exclude holds glob patterns matched against the slash-separated path
	// relative to the root and against the base name.
	Exclude []string
}

// Stats summarises a walk.
type Stats struct {
	Files   int
	Skipped int
}

// CompileExcludes compiles exclude patterns with '/' as the separator.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Files returns regular files under root in lexical order. Each path is root
// joined with the path relative to root. Entries that cannot be read are
// skipped and counted; only an unreadable root is an error.
func Files(ctx context.Context, root string, opts Options) ([]string, Stats, error) {
	var stats Stats
	if root == "" {
		root = "."
	}
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("walk %s: not a directory", root)
	}
	excludes, err := CompileExcludes(opts.Exclude)
	if err != nil {
		return nil, stats, err
	}

	ignores := map[string]ignoreFile{}
	var paths []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			stats.Skipped++
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			loadIgnore(ignores, path, opts)
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			stats.Skipped++
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if name == ".git" || (!opts.Hidden && strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			if ignored(ignores, root, path, true) || excluded(excludes, rel, name) {
				return filepath.SkipDir
			}
			loadIgnore(ignores, path, opts)
			return nil
		}
		if !opts.Hidden && strings.HasPrefix(name, ".") {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ignored(ignores, root, path, false) || excluded(excludes, rel, name) {
			return nil
		}
		paths = append(paths, filepath.Join(root, rel))
		stats.Files++
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, stats, nil
}

// ignoreRule is one pattern line of a .gitignore file. Negated lines are
// stored without the leading '!'.
type ignoreRule struct {
	matcher gitignore.IgnoreMatcher
	negate  bool
}

// ignoreFile holds the rules of one .gitignore in file order.
type ignoreFile struct {
	rules []ignoreRule
}

// decide applies git's last-match-wins rule. decided is false when no line
// of the file mentions path.
func (f ignoreFile) decide(path string, isDir bool) (ignored, decided bool) {
	for i := len(f.rules) - 1; i >= 0; i-- {
		if f.rules[i].matcher.Match(path, isDir) {
			return !f.rules[i].negate, true
		}
	}
	return false, false
}

func parseIgnoreFile(dir string, data []byte) ignoreFile {
	var f ignoreFile
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negate := strings.HasPrefix(line, "!")
		if negate {
			line = line[1:]
			if line == "" {
				continue
			}
		}
		matcher := gitignore.NewGitIgnoreFromReader(dir, strings.NewReader(line))
		f.rules = append(f.rules, ignoreRule{matcher: matcher, negate: negate})
	}
	return f
}

func loadIgnore(ignores map[string]ignoreFile, dir string, opts Options) {
	if opts.NoIgnore {
		return
	}
	data, err := os.ReadFile(filepath.Join(dir, ignoreFileName))
	if err != nil {
		return
	}
	if f := parseIgnoreFile(dir, data); len(f.rules) > 0 {
		ignores[dir] = f
	}
}

// ignored consults .gitignore files from the entry's parent up to root. The
// nearest file with a matching line decides, so a nested "!pattern"
// re-includes what a parent ignores.
func ignored(ignores map[string]ignoreFile, root, path string, isDir bool) bool {
	if len(ignores) == 0 {
		return false
	}
	dir := filepath.Dir(path)
	for {
		if f, ok := ignores[dir]; ok {
			if hit, decided := f.decide(path, isDir); decided {
				return hit
			}
		}
		if dir == root || dir == "." || dir == string(filepath.Separator) {
			return false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

func excluded(globs []glob.Glob, rel, name string) bool {
	if len(globs) == 0 {
		return false
	}
	slashed := filepath.ToSlash(rel)
	for _, g := range globs {
		if g.Match(slashed) || g.Match(name) {
			return true
		}
	}
	return false
}
