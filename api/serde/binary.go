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
	"errors"
	"mime"
	"strings"

	"github.com/sul-dlss/dor-services-client-sub000/api"
)

// ErrEmptyPayload is returned when a body to decode is empty or blank.
var ErrEmptyPayload = errors.New("empty payload")

type BinarySerde interface {
	SerializeBinary(value any) ([]byte, error)
	DeserializeBinary(data []byte, valuePtr any) error
}

// ForContentType picks the serde matching a reply's Content-Type header.
// Unknown or missing types fall back to JSON.
func ForContentType(contentType string) BinarySerde {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case mediaType == api.ContentTypeMsgpack, mediaType == "application/x-msgpack":
		return &MsgpackSerde{}
	case mediaType == api.ContentTypeXML, mediaType == "text/xml", strings.HasSuffix(mediaType, "+xml"):
		return &XmlSerde{}
	default:
		return &JsonSerde{}
	}
}
