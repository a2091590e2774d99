package app

// Role identifies one projected attribute of a listing row.
type Role int

const (
	RoleFileName Role = iota
	RoleCreationDate
	RoleModifiedDate
	RoleFileSize
	RoleIconSource
	RoleFilePath
	RoleIsDir
	RoleIsFile

	roleCount
)

var roleKeys = [roleCount]string{
	RoleFileName:     "fileName",
	RoleCreationDate: "creationDate",
	RoleModifiedDate: "modifiedDate",
	RoleFileSize:     "fileSize",
	RoleIconSource:   "iconSource",
	RoleFilePath:     "filePath",
	RoleIsDir:        "isDir",
	RoleIsFile:       "isFile",
}

// RoleMap is the fixed bijection between roles and their external keys.
// It is built once and only read afterwards.
type RoleMap struct {
	byKey map[string]Role
}

func newRoleMap() RoleMap {
	m := RoleMap{byKey: make(map[string]Role, roleCount)}
	for r := Role(0); r < roleCount; r++ {
		key := roleKeys[r]
		if key == "" {
			panic("app: role without key")
		}
		if _, dup := m.byKey[key]; dup {
			panic("app: duplicate role key " + key)
		}
		m.byKey[key] = r
	}
	return m
}

// Lookup returns the role for key.
func (m RoleMap) Lookup(key string) (Role, bool) {
	r, ok := m.byKey[key]
	return r, ok
}

// Keys returns every key in role order.
func (m RoleMap) Keys() []string {
	keys := make([]string, roleCount)
	copy(keys, roleKeys[:])
	return keys
}

func (r Role) Valid() bool {
	return r >= 0 && r < roleCount
}

// Key returns the external key of r, or "" for an invalid role.
func (r Role) Key() string {
	if !r.Valid() {
		return ""
	}
	return roleKeys[r]
}

func (r Role) String() string {
	return r.Key()
}
