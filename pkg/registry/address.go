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

// Package registry reads pNode records from the on-chain registry program.
// Each node has one program-derived account whose address is computed from the
// node identity, so records can be fetched without an index.
package registry

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/oasisprotocol/curve25519-voi/curve"
)

const (
	// identitySize is the length of a decoded pNode identity and of a program id.
	identitySize = 32

	addressSeed = "pnode"
	pdaMarker   = "ProgramDerivedAddress"
)

var (
	ErrInvalidNodeID    = errors.New("node id is not a base58 32-byte key")
	ErrInvalidProgramID = errors.New("program id is not a base58 32-byte key")
	ErrNoViableBump     = errors.New("no bump seed yields an off-curve address")
)

// DeriveAddress computes the registry account address of a node. It returns
// the base58 address and the bump seed that produced it.
func DeriveAddress(nodeID, programID string) (string, uint8, error) {
	identity, err := decodeKey(nodeID)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidNodeID, nodeID)
	}

	program, err := decodeKey(programID)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidProgramID, programID)
	}

	for bump := 255; bump >= 0; bump-- {
		candidate := createAddress([][]byte{[]byte(addressSeed), identity, {byte(bump)}}, program)
		if !onCurve(candidate[:]) {
			return base58.Encode(candidate[:]), uint8(bump), nil
		}
	}

	return "", 0, ErrNoViableBump
}

func createAddress(seeds [][]byte, program []byte) [sha256.Size]byte {
	h := sha256.New()

	for _, s := range seeds {
		h.Write(s)
	}

	h.Write(program)
	h.Write([]byte(pdaMarker))

	var out [sha256.Size]byte

	copy(out[:], h.Sum(nil))

	return out
}

// onCurve reports whether b decompresses to a valid ed25519 point.
func onCurve(b []byte) bool {
	var compressed curve.CompressedEdwardsY

	if _, err := compressed.SetBytes(b); err != nil {
		return false
	}

	var p curve.EdwardsPoint

	_, err := p.SetCompressedY(&compressed)

	return err == nil
}

func decodeKey(s string) ([]byte, error) {
	b := base58.Decode(s)
	if len(b) != identitySize {
		return nil, fmt.Errorf("decoded %d bytes", len(b))
	}

	return b, nil
}
