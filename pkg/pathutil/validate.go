// Package pathutil provides name validation for entries. Entry names become
// storage keys and on-disk filenames, so they are restricted to a safe
// character set.
package pathutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/revlog-project/revlog/pkg/errclass"
)

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._-"

// ValidateEntryName checks that a name is safe to use as a storage key.
func ValidateEntryName(name string) error {
	if name == "" {
		return errclass.ErrNameInvalid.WithMessage("entry name must not be empty")
	}

	// NFC normalize before checking: visually identical names must not map
	// to distinct entries.
	name = norm.NFC.String(name)

	// "." resolves to the storage directory itself, not a key inside it.
	if name == "." {
		return errclass.ErrNameInvalid.WithMessage(`entry name must not be "."`)
	}
	if strings.Contains(name, "..") {
		return errclass.ErrNameInvalid.WithMessagef("entry name must not contain '..': %s", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return errclass.ErrNameInvalid.WithMessagef("entry name must not contain separators: %s", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errclass.ErrNameInvalid.WithMessagef("entry name must not contain control characters: %q", name)
		}
		if !strings.ContainsRune(nameAlphabet, r) {
			return errclass.ErrNameInvalid.WithMessagef("entry name must match [a-zA-Z0-9._-]+: %s", name)
		}
	}
	return nil
}

// NormalizeEntryName returns the NFC-normalized form of a name. Callers
// validate first, then store the normalized form.
func NormalizeEntryName(name string) string {
	return norm.NFC.String(name)
}
