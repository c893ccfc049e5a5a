package glspgen

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/johnholliday/glsp-generator-sub001/errors"
)

// loadFile reads a grammar file and returns its content together with a
// fingerprint for cache keying. A missing or unreadable file wraps
// errors.ErrFileNotFound so callers can classify without string matching.
func loadFile(path string) (content, fingerprint string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", errors.Wrapf(errors.ErrFileNotFound, "stat %s: %v", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrapf(errors.ErrFileNotFound, "read %s: %v", path, err)
	}
	return string(data), fileFingerprint(info), nil
}

// fileFingerprint derives a cheap change detector from file metadata.
// mtime plus size catches every ordinary edit without hashing the
// content; a content hash would cost a full read on every cache probe.
func fileFingerprint(info os.FileInfo) string {
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size())
}

// contentFingerprint hashes in-memory content for cache keying. In-memory
// sources have no metadata, so the content itself is the identity.
func contentFingerprint(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
