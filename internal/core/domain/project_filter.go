package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"go.trai.ch/zerr"
)

const (
	globPrefix  = "glob:"
	regexPrefix = "regex:"
)

type matcher interface {
	Match(path string) bool
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) Match(path string) bool {
	return m.re.MatchString(path)
}

// ProjectFilter is the inclusion scope declared in the "project" section of the settings.
//
// A path is included when no include rule is configured or any include rule
// matches, and no exclude rule matches. Rules are matched against the
// slash-separated path and, when the filter has a root, against the path
// relative to that root: both "src/**" and "**/src/**" select the sources of
// the project rooted at the config's directory. Relative paths are taken
// relative to the root.
type ProjectFilter struct {
	root    string
	include []matcher
	exclude []matcher
}

// NewProjectFilter builds a filter from the settings "project" section.
// Recognised keys: includePaths, excludePaths (glob: or regex: prefixed, glob by default)
// and includeFilters, excludeFilters (regular expressions).
func NewProjectFilter(section map[string]any) (*ProjectFilter, error) {
	f := &ProjectFilter{}
	if section == nil {
		return f, nil
	}

	for _, spec := range []struct {
		key   string
		paths bool
		into  *[]matcher
	}{
		{"includePaths", true, &f.include},
		{"excludePaths", true, &f.exclude},
		{"includeFilters", false, &f.include},
		{"excludeFilters", false, &f.exclude},
	} {
		patterns, err := stringList(section[spec.key])
		if err != nil {
			return nil, zerr.With(err, "key", spec.key)
		}
		for _, pattern := range patterns {
			m, err := compilePattern(pattern, spec.paths)
			if err != nil {
				return nil, zerr.With(zerr.With(err, "key", spec.key), "pattern", pattern)
			}
			*spec.into = append(*spec.into, m)
		}
	}

	return f, nil
}

// WithRoot returns a copy of the filter matching paths relative to root.
func (f *ProjectFilter) WithRoot(root string) *ProjectFilter {
	c := ProjectFilter{}
	if f != nil {
		c = *f
	}
	c.root = root
	return &c
}

// Includes reports whether the path is inside the inclusion scope.
func (f *ProjectFilter) Includes(path string) bool {
	if f == nil {
		return true
	}
	candidates := f.candidates(path)

	if len(f.include) > 0 && !anyMatch(f.include, candidates) {
		return false
	}
	return !anyMatch(f.exclude, candidates)
}

func (f *ProjectFilter) candidates(path string) []string {
	if f.root == "" {
		return []string{filepath.ToSlash(path)}
	}

	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(f.root, full)
	}
	out := []string{filepath.ToSlash(filepath.Clean(full))}

	rel, err := filepath.Rel(f.root, full)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func anyMatch(ms []matcher, paths []string) bool {
	for _, m := range ms {
		for _, p := range paths {
			if m.Match(p) {
				return true
			}
		}
	}
	return false
}

func compilePattern(pattern string, pathSyntax bool) (matcher, error) {
	switch {
	case strings.HasPrefix(pattern, regexPrefix):
		return compileRegex(strings.TrimPrefix(pattern, regexPrefix))
	case !pathSyntax:
		return compileRegex(pattern)
	default:
		g, err := glob.Compile(strings.TrimPrefix(pattern, globPrefix), '/')
		if err != nil {
			return nil, zerr.Wrap(err, ErrInvalidProjectFilter.Error())
		}
		return g, nil
	}
}

func compileRegex(pattern string) (matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, zerr.Wrap(err, ErrInvalidProjectFilter.Error())
	}
	return regexMatcher{re: re}, nil
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{list}, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, zerr.Wrap(fmt.Errorf("expected string, got %T", item), ErrInvalidProjectFilter.Error())
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, zerr.Wrap(fmt.Errorf("expected list of strings, got %T", v), ErrInvalidProjectFilter.Error())
	}
}
