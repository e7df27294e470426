package cms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/cms"
)

func TestPool_RegisterAndList(t *testing.T) {
	pool := cms.NewPool()
	pool.MustRegister(&stubPlugin{name: "Text"})
	pool.MustRegister(&stubPlugin{name: "Form"})

	if diff := cmp.Diff([]string{"Form", "Text"}, pool.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !pool.Has("Form") {
		t.Fatalf("expected Form to be registered")
	}
	if _, err := pool.Get("Missing"); err == nil {
		t.Fatalf("expected error for missing plugin")
	}
}

func TestPool_RejectsDuplicatesAndEmptyNames(t *testing.T) {
	pool := cms.NewPool()
	if err := pool.Register(&stubPlugin{name: "Form"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := pool.Register(&stubPlugin{name: "Form"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := pool.Register(&stubPlugin{name: "  "}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := pool.Register(nil); err == nil {
		t.Fatalf("expected nil plugin error")
	}
}

func TestPool_MustRegisterPanicsOnDuplicate(t *testing.T) {
	pool := cms.NewPool()
	pool.MustRegister(&stubPlugin{name: "Form"})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	pool.MustRegister(&stubPlugin{name: "Form"})
}
