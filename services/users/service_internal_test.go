package users

import (
	"testing"

	"github.com/spf13/afero"
)

func TestDeleteRestoresUserWhenPersistFails(t *testing.T) {
	base := afero.NewMemMapFs()
	svc, err := NewServiceWithFs(base, "profiles")
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	created, err := svc.Create("Flaky Disk")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	svc.fs = afero.NewReadOnlyFs(base)

	if err := svc.Delete(created.ID); err == nil {
		t.Fatalf("expected delete to fail when the store is unwritable")
	}
	if !svc.Exists(created.ID) {
		t.Fatalf("expected user to remain after a failed delete")
	}
	if _, err := svc.Get(created.ID); err != nil {
		t.Fatalf("expected user to be retrievable after a failed delete: %v", err)
	}
}
