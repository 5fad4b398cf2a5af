// Package source reads env source files, transparently decrypting
// age-encrypted variants in memory. Plaintext from an encrypted source
// lives only in the returned string and is never written anywhere.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"github.com/xmazu/envsample/internal/config"
)

const (
	// IdentityEnv may hold an age identity string directly.
	IdentityEnv = "ENVSAMPLE_IDENTITY"

	// AgeSuffix marks sources that are encrypted at rest.
	AgeSuffix = ".age"
)

var ErrNoIdentity = errors.New("no age identity available")

// Resolve picks the on-disk form of a configured source name: the plain
// file when present, otherwise its .age-encrypted sibling.
func Resolve(dir, name string) (string, bool) {
	plain := filepath.Join(dir, name)
	if fileExists(plain) {
		return plain, true
	}
	if !strings.HasSuffix(name, AgeSuffix) {
		if enc := plain + AgeSuffix; fileExists(enc) {
			return enc, true
		}
	}
	return plain, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Read returns the text of one source file. A missing file is absence,
// not an error; any other read failure propagates. A .age path is
// decrypted with the supplied identities.
func Read(path string, identities []age.Identity) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !strings.HasSuffix(path, AgeSuffix) {
		return string(data), true, nil
	}

	if len(identities) == 0 {
		return "", false, fmt.Errorf("%s: %w", path, ErrNoIdentity)
	}
	r, err := age.Decrypt(bytes.NewReader(data), identities...)
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt %s: %w", path, err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt %s: %w", path, err)
	}
	return string(plain), true, nil
}

// Identities gathers age identities from the ENVSAMPLE_IDENTITY variable,
// the configured identity file, and the default identity path, in that
// order. An empty result is fine for projects without encrypted sources.
func Identities(identityPath string) ([]age.Identity, error) {
	var ids []age.Identity

	if keyStr := os.Getenv(IdentityEnv); keyStr != "" {
		id, err := age.ParseX25519Identity(strings.TrimSpace(keyStr))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", IdentityEnv, err)
		}
		ids = append(ids, id)
	}

	paths := []string{identityPath}
	if def := config.DefaultIdentityPath(); def != identityPath {
		paths = append(paths, def)
	}
	for _, path := range paths {
		if path == "" {
			continue
		}
		fileIDs, err := parseIdentityFile(path)
		if err != nil {
			return nil, err
		}
		ids = append(ids, fileIDs...)
	}
	return ids, nil
}

func parseIdentityFile(path string) ([]age.Identity, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open identity file: %w", err)
	}
	defer f.Close()

	ids, err := age.ParseIdentities(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity file %s: %w", path, err)
	}
	return ids, nil
}
