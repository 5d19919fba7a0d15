package blobstore

import "strings"

// KeyPrefix normalizes a root prefix for object stores: no leading or
// trailing slashes.
func KeyPrefix(root string) string {
	return strings.Trim(root, "/")
}

// JoinKey maps a blob name to an object key under prefix.
func JoinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// TrimKey maps an object key back to a blob name. ok is false for keys
// outside prefix.
func TrimKey(prefix, key string) (string, bool) {
	if prefix == "" {
		return key, true
	}
	return strings.CutPrefix(key, prefix+"/")
}
