package modules

import (
	"testing"

	"github.com/louisbranch/lingo/internal/services/web/webtest"
)

func TestDefaultModules(t *testing.T) {
	t.Parallel()

	deps := webtest.New(t).Deps
	public := DefaultPublicModules(deps)
	protected := DefaultProtectedModules(deps)

	wantPublic := []string{"pages", "auth"}
	wantProtected := []string{"actions", "fragments"}
	if len(public) != len(wantPublic) {
		t.Fatalf("public module count = %d, want %d", len(public), len(wantPublic))
	}
	if len(protected) != len(wantProtected) {
		t.Fatalf("protected module count = %d, want %d", len(protected), len(wantProtected))
	}
	for i, want := range wantPublic {
		if got := public[i].ID(); got != want {
			t.Fatalf("public module[%d] id = %q, want %q", i, got, want)
		}
	}
	for i, want := range wantProtected {
		if got := protected[i].ID(); got != want {
			t.Fatalf("protected module[%d] id = %q, want %q", i, got, want)
		}
	}
}

func TestModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	deps := webtest.New(t).Deps
	seen := map[string]struct{}{}
	all := append(DefaultPublicModules(deps), DefaultProtectedModules(deps)...)
	for _, module := range all {
		mount, err := module.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", module.ID(), err)
		}
		if mount.Prefix == "" {
			t.Fatalf("module %q prefix is empty", module.ID())
		}
		if mount.Handler == nil {
			t.Fatalf("module %q handler is nil", module.ID())
		}
		if _, ok := seen[mount.Prefix]; ok {
			t.Fatalf("duplicate mount prefix %q", mount.Prefix)
		}
		seen[mount.Prefix] = struct{}{}
	}
}

func TestModulesRejectMissingBrowserManager(t *testing.T) {
	t.Parallel()

	all := append(DefaultPublicModules(Dependencies{}), DefaultProtectedModules(Dependencies{})...)
	for _, module := range all {
		if _, err := module.Mount(); err == nil {
			t.Fatalf("module %q mounted without a browser manager", module.ID())
		}
	}
}
