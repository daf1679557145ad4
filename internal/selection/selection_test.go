package selection

import (
	"testing"

	"github.com/neil-edlib/edlib/pkg/dispatch"
	"github.com/neil-edlib/edlib/pkg/keymap"
	"github.com/neil-edlib/edlib/pkg/pane"
)

// TestScenarioS3SelectionProtocol reproduces spec.md §8 scenario S3: pane P
// claims the selection; pane Q commits and receives the selection content
// via the publication; Q then discards and gets Efalse (wrong owner).
func TestScenarioS3SelectionProtocol(t *testing.T) {
	root := pane.NewRoot()
	p := pane.Register(root.Pane(), 0, keymap.New(), nil)
	q := pane.Register(root.Pane(), 0, keymap.New(), nil)

	tr := New()
	p.Handler.SetExact("Notify:selection:content", func(key string, raw any) int {
		ctx := raw.(*dispatch.Context)
		ctx.Str = "hello from P"
		return 1
	})

	if res := tr.Claim(&dispatch.Context{Home: p}); res != 1 {
		t.Fatalf("Claim = %d, want 1", res)
	}

	commitCtx := &dispatch.Context{Home: q}
	if res := tr.Commit(commitCtx); res != 1 {
		t.Fatalf("Commit = %d, want 1", res)
	}
	if commitCtx.Str != "hello from P" {
		t.Fatalf("commitCtx.Str = %q, want the owner's published content", commitCtx.Str)
	}

	if res := tr.Discard(&dispatch.Context{Home: q}); res != dispatch.Efalse {
		t.Fatalf("Discard by non-owner = %d, want Efalse", res)
	}
}

func TestCommitWithNoOwnerIsEfalse(t *testing.T) {
	tr := New()
	if res := tr.Commit(&dispatch.Context{}); res != dispatch.Efalse {
		t.Fatalf("Commit with no owner = %d, want Efalse", res)
	}
}

func TestDiscardByOwnerSucceeds(t *testing.T) {
	root := pane.NewRoot()
	p := pane.Register(root.Pane(), 0, keymap.New(), nil)

	tr := New()
	tr.Claim(&dispatch.Context{Home: p})
	if res := tr.Discard(&dispatch.Context{Home: p}); res != 1 {
		t.Fatalf("Discard by owner = %d, want 1", res)
	}
	if tr.Owner() != nil {
		t.Fatalf("Owner() after discard with no fallback = %v, want nil", tr.Owner())
	}
}

func TestClaimWithNumOneInstallsFallback(t *testing.T) {
	root := pane.NewRoot()
	p := pane.Register(root.Pane(), 0, keymap.New(), nil)
	q := pane.Register(root.Pane(), 0, keymap.New(), nil)

	tr := New()
	tr.Claim(&dispatch.Context{Home: p, Num: 1})
	tr.Claim(&dispatch.Context{Home: q})
	if tr.Owner() != q {
		t.Fatalf("Owner() after second claim = %v, want q", tr.Owner())
	}

	if res := tr.Discard(&dispatch.Context{Home: q}); res != 1 {
		t.Fatalf("Discard by q = %d, want 1", res)
	}
	if tr.Owner() != p {
		t.Fatalf("Owner() after discard = %v, want fallback p", tr.Owner())
	}
}

func TestOwnerClosedIsTreatedAsNoOwner(t *testing.T) {
	root := pane.NewRoot()
	p := pane.Register(root.Pane(), 0, keymap.New(), nil)

	tr := New()
	tr.Claim(&dispatch.Context{Home: p})
	p.Close()

	if tr.Owner() != nil {
		t.Fatalf("Owner() after owner closed = %v, want nil (weak reference)", tr.Owner())
	}
	if res := tr.Commit(&dispatch.Context{}); res != dispatch.Efalse {
		t.Fatalf("Commit with closed owner = %d, want Efalse", res)
	}
}

func TestRegisterWiresHandlers(t *testing.T) {
	root := pane.NewRoot()
	p := pane.Register(root.Pane(), 0, keymap.New(), nil)

	tr := New()
	Register(p.Handler, tr)

	res := dispatch.Dispatch(&dispatch.Context{Key: "selection:claim", Focus: p})
	if res != 1 {
		t.Fatalf("dispatched selection:claim = %d, want 1", res)
	}
	if tr.Owner() != p {
		t.Fatalf("Owner() after dispatched claim = %v, want p", tr.Owner())
	}
}
