// Package architecture enforces the package dependency directions of the
// repo. The rules are checked against the import lists of the production
// sources, so a refactor that reaches across a layer fails here before it
// fails in review.
package architecture_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/benjaminwootton/QueryDog-sub000"

type layerRule struct {
	sourcePrefix string
	forbidden    []string
	hint         string
}

var rules = []layerRule{
	{
		sourcePrefix: modulePath + "/internal/domain",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/format",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/internal/service",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "domain may only import domain",
	},
	{
		sourcePrefix: modulePath + "/internal/format",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/internal/service",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "format renders domain values and nothing else",
	},
	{
		sourcePrefix: modulePath + "/internal/state",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/internal/service",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "state depends on domain; fetch functions are injected",
	},
	{
		sourcePrefix: modulePath + "/internal/service",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "services see storage through the interfaces in domain",
	},
	{
		sourcePrefix: modulePath + "/internal/repository",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/middleware",
			modulePath + "/internal/service",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "repositories depend on the driver and domain",
	},
	{
		sourcePrefix: modulePath + "/internal/api",
		forbidden: []string{
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "handlers reach data through services",
	},
	{
		sourcePrefix: modulePath + "/internal/ui",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "ui renders from services and shared state",
	},
	{
		sourcePrefix: modulePath + "/internal/middleware",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/repository",
			modulePath + "/internal/service",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "middleware is route-agnostic",
	},
	{
		sourcePrefix: modulePath + "/internal/app",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/middleware",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "app wires storage and services; transport wiring happens in cmd",
	},
	{
		sourcePrefix: modulePath + "/internal/testutil",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/internal/service",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
			modulePath + "/pkg",
		},
		hint: "test fixtures are plain domain values",
	},
	{
		sourcePrefix: modulePath + "/pkg",
		forbidden: []string{
			modulePath + "/internal/api",
			modulePath + "/internal/app",
			modulePath + "/internal/clickhouse",
			modulePath + "/internal/config",
			modulePath + "/internal/middleware",
			modulePath + "/internal/repository",
			modulePath + "/internal/service",
			modulePath + "/internal/state",
			modulePath + "/internal/ui",
			modulePath + "/cmd",
		},
		hint: "public packages ride on domain and format only",
	},
}

func TestImportBoundaries(t *testing.T) {
	root := repoRootDir(t)

	files := make([]string, 0)
	for _, dir := range []string{"internal", "pkg"} {
		walkErr := filepath.WalkDir(filepath.Join(root, dir), func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".go") {
				files = append(files, p)
			}
			return nil
		})
		require.NoError(t, walkErr)
	}
	require.NotEmpty(t, files, "no Go files found under the repo root")

	violations := make([]string, 0)
	fset := token.NewFileSet()

	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		require.NoError(t, err)
		rel = filepath.ToSlash(rel)
		if shouldSkipFile(rel) {
			continue
		}

		sourcePkg := modulePath + "/" + path.Dir(rel)
		rule, ok := findRule(sourcePkg)
		if !ok {
			continue
		}

		parsed, parseErr := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		require.NoErrorf(t, parseErr, "parse imports for %s", rel)

		for _, imp := range parsed.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(importPath, modulePath+"/") {
				continue
			}
			if violatesRule(importPath, rule.forbidden) {
				violations = append(violations,
					sourcePkg+" imports "+importPath+" via "+rel+"; "+rule.hint)
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("%s", strings.Join(violations, "\n"))
	}
}

func repoRootDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found above working directory")
		dir = parent
	}
}

// Test files may import fixtures and wiring from anywhere.
func shouldSkipFile(rel string) bool {
	return strings.HasSuffix(rel, "_test.go")
}

func findRule(sourcePkg string) (layerRule, bool) {
	for _, rule := range rules {
		if hasPathPrefix(sourcePkg, rule.sourcePrefix) {
			return rule, true
		}
	}
	return layerRule{}, false
}

func violatesRule(importPath string, forbidden []string) bool {
	for _, prefix := range forbidden {
		if hasPathPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}

func hasPathPrefix(value string, prefix string) bool {
	return value == prefix || strings.HasPrefix(value, prefix+"/")
}
