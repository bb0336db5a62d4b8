// Package verify checks downloaded release archives before they are
// repackaged, using detached GPG signatures or SHA256 checksum files.
// A wheel is never assembled from an archive that failed
// verification.
package verify

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Method indicates how an archive was verified.
type Method int

const (
	// MethodNone indicates no verification was performed.
	MethodNone Method = iota
	// MethodGPG indicates detached GPG signature verification.
	MethodGPG
	// MethodSHA256 indicates SHA256 checksum verification.
	MethodSHA256
)

// String returns the string representation of the method.
func (m Method) String() string {
	switch m {
	case MethodGPG:
		return "GPG"
	case MethodSHA256:
		return "SHA256"
	case MethodNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Result contains the outcome of a verification.
type Result struct {
	Method Method
}

// Verifier verifies release archives against a GPG keyring file.
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a verifier reading public keys from
// keyringPath. The keyring may be armored or binary.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// VerifyDetached verifies an archive against a detached GPG
// signature. Armored and binary signatures are both accepted.
func (v *Verifier) VerifyDetached(archivePath, signaturePath string) (*Result, error) {
	keyring, err := v.loadKeyring()
	if err != nil {
		return nil, fmt.Errorf("load keyring: %w", err)
	}

	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	sigFile, err := os.Open(signaturePath)
	if err != nil {
		return nil, fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	// Try armored first, then binary
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, archiveFile, sigFile, nil)
	if err != nil {
		if _, serr := archiveFile.Seek(0, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("rewind archive: %w", serr)
		}
		if _, serr := sigFile.Seek(0, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("rewind signature: %w", serr)
		}
		_, err = openpgp.CheckDetachedSignature(keyring, archiveFile, sigFile, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("verify signature: %w", err)
	}

	return &Result{Method: MethodGPG}, nil
}

// VerifyChecksum verifies an archive against a SHA256 checksum file
// in the conventional "hash  filename" format.
func (v *Verifier) VerifyChecksum(archivePath, checksumPath string) (*Result, error) {
	actual, err := fileSHA256(archivePath)
	if err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	expected, err := findChecksum(checksumPath, filepath.Base(archivePath))
	if err != nil {
		return nil, fmt.Errorf("find checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return nil, fmt.Errorf("checksum mismatch:\nactual:   %s\nexpected: %s", actual, expected)
	}

	return &Result{Method: MethodSHA256}, nil
}

// loadKeyring reads the keyring file, accepting armored and binary
// forms.
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	if v.keyringPath == "" {
		return nil, fmt.Errorf("no keyring configured")
	}

	keyringFile, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		if _, serr := keyringFile.Seek(0, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("rewind keyring: %w", serr)
		}
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}
	return keyring, nil
}

// fileSHA256 calculates the SHA256 checksum of a file.
func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// findChecksum locates the checksum for a file name inside a
// checksum file.
func findChecksum(checksumPath, filename string) (string, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		// Some tools prefix the name with '*' for binary mode
		if strings.TrimPrefix(fields[1], "*") == filename {
			return fields[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read checksum file: %w", err)
	}

	return "", fmt.Errorf("no checksum found for %s", filename)
}
