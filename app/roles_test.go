package app

import "testing"

func TestRoleMapIsBijection(t *testing.T) {
	m := newRoleMap()
	keys := m.Keys()

	if len(keys) != int(roleCount) {
		t.Fatalf("expected %d keys, got %d", roleCount, len(keys))
	}

	seen := map[string]bool{}
	for i, key := range keys {
		if seen[key] {
			t.Errorf("duplicate key %q", key)
		}
		seen[key] = true

		role, ok := m.Lookup(key)
		if !ok {
			t.Fatalf("key %q does not resolve", key)
		}
		if role != Role(i) {
			t.Errorf("key %q resolves to %v, want %v", key, role, Role(i))
		}
		if role.Key() != key {
			t.Errorf("role %d has key %q, want %q", role, role.Key(), key)
		}
	}
}

func TestRoleKeys(t *testing.T) {
	want := []string{"fileName", "creationDate", "modifiedDate", "fileSize", "iconSource", "filePath", "isDir", "isFile"}
	got := newRoleMap().Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestInvalidRole(t *testing.T) {
	for _, r := range []Role{-1, roleCount, 42} {
		if r.Valid() {
			t.Errorf("role %d should be invalid", r)
		}
		if r.Key() != "" {
			t.Errorf("invalid role %d has key %q", r, r.Key())
		}
	}
	if _, ok := newRoleMap().Lookup("nope"); ok {
		t.Error("unknown key resolved")
	}
}

func TestKeysReturnsCopy(t *testing.T) {
	m := newRoleMap()
	keys := m.Keys()
	keys[0] = "changed"
	if m.Keys()[0] != "fileName" {
		t.Error("Keys exposed the internal table")
	}
	if _, ok := m.Lookup("changed"); ok {
		t.Error("role map was mutated through Keys")
	}
}
