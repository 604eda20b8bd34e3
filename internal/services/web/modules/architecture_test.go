package modules

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

func moduleImports(t *testing.T) map[string][]string {
	t.Helper()
	entries, err := filepath.Glob(filepath.Join("*", "*.go"))
	if err != nil {
		t.Fatalf("glob module files: %v", err)
	}
	fset := token.NewFileSet()
	imports := make(map[string][]string, len(entries))
	for _, file := range entries {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse imports for %s: %v", file, err)
		}
		for _, imp := range parsed.Imports {
			imports[file] = append(imports[file], strings.Trim(imp.Path.Value, "\""))
		}
	}
	return imports
}

func TestFeatureModulesDoNotImportSiblingModules(t *testing.T) {
	t.Parallel()

	for file, paths := range moduleImports(t) {
		for _, path := range paths {
			if strings.Contains(path, "/internal/services/web/modules/") {
				t.Fatalf("file %s imports sibling module path %q", file, path)
			}
		}
	}
}

func TestFeatureModulesReachBackendsThroughSharedLayers(t *testing.T) {
	t.Parallel()

	forbidden := []string{
		"/internal/services/lingoapi",
		"/internal/services/web/storage",
	}
	for file, paths := range moduleImports(t) {
		for _, path := range paths {
			for _, prefix := range forbidden {
				if strings.Contains(path, prefix) {
					t.Fatalf("file %s imports %q; go through the browser manager or view loader", file, path)
				}
			}
		}
	}
}

func TestRoutePrefixesRemainUniqueConstants(t *testing.T) {
	t.Parallel()

	prefixes := []string{
		routepath.Root,
		routepath.AuthPrefix,
		routepath.ActionsPrefix,
		routepath.FragmentsPrefix,
		routepath.StaticPrefix,
	}
	seen := map[string]struct{}{}
	for _, prefix := range prefixes {
		if _, ok := seen[prefix]; ok {
			t.Fatalf("duplicate route prefix constant %q", prefix)
		}
		seen[prefix] = struct{}{}
	}
}

func TestFeatureModulesFollowTemplate(t *testing.T) {
	t.Parallel()

	areas := []string{"pages", "auth", "actions", "fragments"}
	requiredFiles := []string{"module.go", "routes.go", "routes_test.go", "handlers.go", "handlers_test.go"}
	for _, area := range areas {
		for _, file := range requiredFiles {
			path := filepath.Join(area, file)
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("module %q missing required file %q: %v", area, file, err)
			}
		}
	}
}
