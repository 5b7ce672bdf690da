/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package hal

import (
	"encoding/base64"
	"encoding/json"
)

// PageInstruction is an opaque paging cursor exchanged with clients.
// Clients echo the instruction back verbatim on the next list execution.
type PageInstruction struct {
	Cursor string `json:"cursor"`
}

// Paging carries the paging instructions of a collection response.
type Paging struct {
	Previous *PageInstruction `json:"previous,omitempty"`
	Current  *PageInstruction `json:"current,omitempty"`
	Next     *PageInstruction `json:"next,omitempty"`
}

// pageCursor is the decoded form of an opaque cursor.
type pageCursor struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EncodeCursor encodes an offset and limit into an opaque page instruction.
func EncodeCursor(offset, limit int) *PageInstruction {
	payload, _ := json.Marshal(pageCursor{Offset: offset, Limit: limit})
	return &PageInstruction{Cursor: base64.RawURLEncoding.EncodeToString(payload)}
}

// DecodeCursor decodes an opaque page instruction back into offset and limit.
// A nil or empty instruction yields the zero cursor.
func DecodeCursor(instruction *PageInstruction) (offset, limit int, err error) {
	if instruction == nil || instruction.Cursor == "" {
		return 0, 0, nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(instruction.Cursor)
	if err != nil {
		return 0, 0, err
	}

	var cursor pageCursor
	if err := json.Unmarshal(payload, &cursor); err != nil {
		return 0, 0, err
	}
	return cursor.Offset, cursor.Limit, nil
}

// BuildPaging derives the paging block for a collection window.
func BuildPaging(offset, limit, total int) Paging {
	paging := Paging{
		Current: EncodeCursor(offset, limit),
	}
	if offset > 0 {
		previous := offset - limit
		if previous < 0 {
			previous = 0
		}
		paging.Previous = EncodeCursor(previous, limit)
	}
	if offset+limit < total {
		paging.Next = EncodeCursor(offset+limit, limit)
	}
	return paging
}

// NewCollection builds a HAL collection resource with the count and paging
// fields every collection response carries.
func NewCollection(selfHref, title, embedRel string, items []Resource, total, offset, limit int) (*Resource, error) {
	collection := NewResource()
	collection.AddLink(SelfRel, Link{Href: selfHref, Title: title})

	if err := collection.SetField("count", total); err != nil {
		return nil, err
	}
	if err := collection.SetField("paging", BuildPaging(offset, limit, total)); err != nil {
		return nil, err
	}

	for _, item := range items {
		collection.Embed(embedRel, item)
	}
	return collection, nil
}
