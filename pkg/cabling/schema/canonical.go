/*
Copyright 2019 Intel Corporation

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Canonicalize returns the stable, newline-terminated serialization of a
// validated Project used to derive input_hash. Struct field order is fixed
// by the type definition, encoding/json sorts map keys, and no indentation
// is emitted, so two Projects with identical content always canonicalize
// to the same bytes regardless of the original document's key order or
// whitespace.
func Canonicalize(p *Project) ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("schema: canonicalize: %w", err)
	}
	return append(b, '\n'), nil
}

// InputHash returns the hex-encoded SHA-256 digest of the canonical form of
// p, per §4.5's input_hash definition.
func InputHash(p *Project) (string, error) {
	b, err := Canonicalize(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
