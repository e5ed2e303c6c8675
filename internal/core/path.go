package core

import (
	"fmt"
	"path"
	"strings"
)

func NormalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func ValidateRoutePath(p string) error {
	if p == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("path must start with /")
	}

	if strings.Contains(p, "?") {
		return fmt.Errorf("path cannot contain query string")
	}

	if strings.Contains(p, "#") {
		return fmt.Errorf("path cannot contain fragment")
	}

	if strings.Contains(p, "..") {
		return fmt.Errorf("path cannot contain parent directory references")
	}

	if strings.Contains(p, "*") {
		return fmt.Errorf("path cannot contain wildcards")
	}

	for _, seg := range strings.Split(p, "/") {
		opens := strings.Count(seg, "{")
		closes := strings.Count(seg, "}")
		if opens != closes || opens > 1 {
			return fmt.Errorf("malformed placeholder in segment %q", seg)
		}
		if opens == 1 && !isPlaceholder(seg) {
			return fmt.Errorf("placeholder must span a whole segment, got %q", seg)
		}
	}

	return nil
}

// PatternParams returns placeholder names in the order they appear.
func PatternParams(pattern string) []string {
	var names []string
	for _, seg := range strings.Split(pattern, "/") {
		if isPlaceholder(seg) {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}

func HasParams(pattern string) bool {
	return len(PatternParams(pattern)) > 0
}

// ExpandPattern substitutes params into a pattern, producing a concrete path.
func ExpandPattern(pattern string, params map[string]string) (string, error) {
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		if !isPlaceholder(seg) {
			continue
		}
		name := seg[1 : len(seg)-1]
		val, ok := params[name]
		if !ok || val == "" {
			return "", fmt.Errorf("%w: {%s} in %s", ErrMissingParam, name, pattern)
		}
		segs[i] = val
	}
	return NormalizePath(strings.Join(segs, "/")), nil
}

// MatchPattern extracts params from a concrete request path. It stays
// router-agnostic on purpose: handlers behave the same behind any mux.
func MatchPattern(pattern, reqPath string) (map[string]string, bool) {
	pSegs := strings.Split(NormalizePath(pattern), "/")
	rSegs := strings.Split(NormalizePath(reqPath), "/")
	if len(pSegs) != len(rSegs) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range pSegs {
		if isPlaceholder(seg) {
			if rSegs[i] == "" {
				return nil, false
			}
			params[seg[1:len(seg)-1]] = rSegs[i]
			continue
		}
		if seg != rSegs[i] {
			return nil, false
		}
	}
	return params, true
}

func isPlaceholder(seg string) bool {
	return len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

// HTMLFilePath maps a URL path to the file it is exported as.
func HTMLFilePath(urlPath string) string {
	urlPath = NormalizePath(urlPath)
	if urlPath == "/" {
		return "index.html"
	}
	return path.Join(strings.TrimPrefix(urlPath, "/"), "index.html")
}
