/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package hashutil verifies SHA-256 digests of files shipped alongside the
// service, such as the GeoIP database.
package hashutil

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	errEmptyChecksum       = errors.New("empty checksum string")
	errUnsupportedEncoding = errors.New("unsupported checksum encoding")
	// ErrChecksumMismatch is returned by VerifyFile when the digest differs.
	ErrChecksumMismatch = errors.New("sha256 checksum mismatch")
)

// DecodeSHA256String decodes a 32-byte digest given as hex or any base64
// alphabet.
func DecodeSHA256String(s string) ([]byte, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return nil, errEmptyChecksum
	}

	if decoded, err := hex.DecodeString(clean); err == nil && len(decoded) == sha256.Size {
		return decoded, nil
	}

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if decoded, err := enc.DecodeString(clean); err == nil && len(decoded) == sha256.Size {
			return decoded, nil
		}
	}

	return nil, errUnsupportedEncoding
}

// CanonicalHexSHA256 re-encodes a digest as lowercase hex.
func CanonicalHexSHA256(s string) (string, error) {
	decoded, err := DecodeSHA256String(s)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(decoded), nil
}

// EqualSHA256 reports whether expected (hex or base64) matches actual.
func EqualSHA256(expected string, actual [32]byte) bool {
	decoded, err := DecodeSHA256String(expected)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(decoded, actual[:]) == 1
}

// FileSHA256 hashes the file at path.
func FileSHA256(path string) ([32]byte, error) {
	var sum [32]byte

	f, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, fmt.Errorf("hash %s: %w", path, err)
	}

	copy(sum[:], h.Sum(nil))

	return sum, nil
}

// VerifyFile checks the file at path against an expected digest.
func VerifyFile(path, expected string) error {
	sum, err := FileSHA256(path)
	if err != nil {
		return err
	}

	if !EqualSHA256(expected, sum) {
		return fmt.Errorf("%w: %s has %s", ErrChecksumMismatch, path, hex.EncodeToString(sum[:]))
	}

	return nil
}
