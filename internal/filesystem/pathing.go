package filesystem

import (
	"strings"

	"github.com/desertwitch/memfs/internal/schema"
)

// normalizePath turns raw user input into a clean absolute path. Surrounding
// whitespace and quotes are stripped, relative paths are anchored at base, and
// "." and ".." components are collapsed lexically (".." at the root is a
// no-op), without looking at the namespace.
func normalizePath(raw string, base string) (string, error) {
	p := trimQuotes(strings.TrimSpace(raw))

	if p == "" {
		return "", ErrInvalidPath
	}

	if !strings.HasPrefix(p, schema.Separator) {
		p = base + schema.Separator + p
	}

	return cleanPath(p), nil
}

// trimQuotes strips one leading and one trailing quote character.
func trimQuotes(p string) string {
	if p != "" && isQuote(p[0]) {
		p = p[1:]
	}
	if p != "" && isQuote(p[len(p)-1]) {
		p = p[:len(p)-1]
	}

	return p
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// cleanPath collapses repeated separators, "." and ".." of an absolute path.
func cleanPath(p string) string {
	var result []string

	for _, comp := range strings.Split(p, schema.Separator) {
		switch comp {
		case "", schema.SelfEntry:
			continue
		case schema.ParentEntry:
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		default:
			result = append(result, comp)
		}
	}

	return joinPath(result)
}

// splitPath splits a clean absolute path into its components. The root path
// has no components.
func splitPath(p string) []string {
	if p == schema.RootPath {
		return nil
	}

	return strings.Split(strings.TrimPrefix(p, schema.Separator), schema.Separator)
}

// joinPath builds an absolute path from components.
func joinPath(comps []string) string {
	return schema.RootPath + strings.Join(comps, schema.Separator)
}

// substituteLink returns the path to continue resolution with after a
// symbolic link was met: the link's own components are replaced by its
// target, the remaining components are appended. Relative targets are
// anchored at the directory holding the link.
func substituteLink(target string, dirComps []string, rest []string) string {
	var p string

	if strings.HasPrefix(target, schema.Separator) {
		p = target
	} else {
		p = joinPath(dirComps) + schema.Separator + target
	}

	if len(rest) > 0 {
		p += schema.Separator + strings.Join(rest, schema.Separator)
	}

	return cleanPath(p)
}
