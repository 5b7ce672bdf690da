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

// Package hal provides the data model for HAL hypermedia documents and
// HAL-FORMS operation templates. Every actionable relation of the portal
// API is discoverable only through `_links` and `_templates`.
package hal

import (
	"encoding/json"
	"strings"
)

// SelfRel is the link relation pointing at the resource itself.
const SelfRel = "self"

// Link represents a single hypermedia link.
type Link struct {
	Href      string `json:"href"`
	Title     string `json:"title,omitempty"`
	Templated bool   `json:"templated,omitempty"`
}

// Expand substitutes `{param}` placeholders in the link href with the
// provided parameter values.
func (l Link) Expand(params map[string]string) string {
	href := l.Href
	for name, value := range params {
		href = strings.ReplaceAll(href, "{"+name+"}", value)
	}
	return href
}

// LinkSet holds one or more links registered under a single relation.
// HAL permits a relation to carry either a single link object or an array;
// both forms unmarshal into a LinkSet.
type LinkSet []Link

// UnmarshalJSON accepts either a single link object or an array of links.
func (ls *LinkSet) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var links []Link
		if err := json.Unmarshal(data, &links); err != nil {
			return err
		}
		*ls = links
		return nil
	}

	var link Link
	if err := json.Unmarshal(data, &link); err != nil {
		return err
	}
	*ls = LinkSet{link}
	return nil
}

// MarshalJSON renders a single-element set as a bare link object.
func (ls LinkSet) MarshalJSON() ([]byte, error) {
	if len(ls) == 1 {
		return json.Marshal(ls[0])
	}
	return json.Marshal([]Link(ls))
}

// TemplateProperty declares the validation contract for one template field.
type TemplateProperty struct {
	Name      string   `json:"name"`
	Prompt    string   `json:"prompt,omitempty"`
	Type      string   `json:"type,omitempty"`
	Required  bool     `json:"required,omitempty"`
	Options   []string `json:"options,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Regex     string   `json:"regex,omitempty"`
	ReadOnly  bool     `json:"readOnly,omitempty"`
	Value     string   `json:"value,omitempty"`
}

// Label returns the human readable label for the property.
func (p TemplateProperty) Label() string {
	if p.Prompt != "" {
		return p.Prompt
	}
	return p.Name
}

// Template represents a server declared operation and its input schema.
type Template struct {
	Title       string             `json:"title"`
	Method      string             `json:"method"`
	Target      string             `json:"target"`
	ContentType string             `json:"contentType,omitempty"`
	Properties  []TemplateProperty `json:"properties,omitempty"`
}

// Resource is a HAL document: links, templates, embedded resources and
// arbitrary domain payload fields.
type Resource struct {
	Links     map[string]LinkSet
	Templates map[string]Template
	Embedded  map[string][]Resource
	Fields    map[string]json.RawMessage
}

// NewResource creates an empty HAL resource.
func NewResource() *Resource {
	return &Resource{
		Links:     make(map[string]LinkSet),
		Templates: make(map[string]Template),
		Embedded:  make(map[string][]Resource),
		Fields:    make(map[string]json.RawMessage),
	}
}

// UnmarshalJSON splits the reserved HAL members from the domain payload.
func (r *Resource) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = *NewResource()

	if links, ok := raw["_links"]; ok {
		if err := json.Unmarshal(links, &r.Links); err != nil {
			return err
		}
		delete(raw, "_links")
	}
	if templates, ok := raw["_templates"]; ok {
		if err := json.Unmarshal(templates, &r.Templates); err != nil {
			return err
		}
		delete(raw, "_templates")
	}
	if embedded, ok := raw["_embedded"]; ok {
		if err := json.Unmarshal(embedded, &r.Embedded); err != nil {
			return err
		}
		delete(raw, "_embedded")
	}

	r.Fields = raw
	return nil
}

// MarshalJSON merges the reserved HAL members with the domain payload.
func (r Resource) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+3)
	for name, value := range r.Fields {
		out[name] = value
	}
	if len(r.Links) > 0 {
		out["_links"] = r.Links
	}
	if len(r.Templates) > 0 {
		out["_templates"] = r.Templates
	}
	if len(r.Embedded) > 0 {
		out["_embedded"] = r.Embedded
	}
	return json.Marshal(out)
}

// Link returns the first link registered under any of the given relations.
// The relation order defines the fallback priority.
func (r *Resource) Link(rels ...string) *Link {
	for _, rel := range rels {
		if links, ok := r.Links[rel]; ok && len(links) > 0 {
			return &links[0]
		}
	}
	return nil
}

// SelfHref returns the resource's own href, resolved from the self link
// first and the self template target second.
func (r *Resource) SelfHref() string {
	if link := r.Link(SelfRel); link != nil {
		return link.Href
	}
	if template, ok := r.Templates[SelfRel]; ok {
		return template.Target
	}
	return ""
}

// SelfTitle returns the title of the resource's self link.
func (r *Resource) SelfTitle() string {
	if link := r.Link(SelfRel); link != nil {
		return link.Title
	}
	return ""
}

// Template returns the named operation template.
func (r *Resource) Template(name string) (Template, bool) {
	template, ok := r.Templates[name]
	return template, ok
}

// HasCapability reports whether any of the given relations is present in
// the resource's links or templates.
func (r *Resource) HasCapability(rels ...string) bool {
	for _, rel := range rels {
		if _, ok := r.Links[rel]; ok {
			return true
		}
		if _, ok := r.Templates[rel]; ok {
			return true
		}
	}
	return false
}

// Capabilities returns the names of all link relations present on the resource.
func (r *Resource) Capabilities() []string {
	capabilities := make([]string, 0, len(r.Links))
	for rel := range r.Links {
		capabilities = append(capabilities, rel)
	}
	return capabilities
}

// SetField stores a domain payload field on the resource.
func (r *Resource) SetField(name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.Fields[name] = raw
	return nil
}

// GetStringField reads a domain payload field as a string.
func (r *Resource) GetStringField(name string) string {
	raw, ok := r.Fields[name]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

// AddLink registers a link under the given relation.
func (r *Resource) AddLink(rel string, link Link) {
	r.Links[rel] = append(r.Links[rel], link)
}

// AddTemplate registers an operation template under the given name.
func (r *Resource) AddTemplate(name string, template Template) {
	r.Templates[name] = template
}

// Embed appends an embedded resource under the given relation.
func (r *Resource) Embed(rel string, resource Resource) {
	r.Embedded[rel] = append(r.Embedded[rel], resource)
}
