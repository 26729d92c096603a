// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serde

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

var _ BinarySerde = (*XmlSerde)(nil)

// XmlSerde reads the attribute-style XML documents the workflow service
// still emits.
type XmlSerde struct{}

func (x *XmlSerde) SerializeBinary(value any) ([]byte, error) {
	data, err := xml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("xml serialization failed: %w", err)
	}
	return data, nil
}

func (x *XmlSerde) DeserializeBinary(data []byte, valuePtr any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("xml deserialization failed: %w", ErrEmptyPayload)
	}
	if err := xml.Unmarshal(data, valuePtr); err != nil {
		return fmt.Errorf("xml deserialization failed: %w", err)
	}
	return nil
}
