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

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DecodeError reports a structural decode failure. Path is the sequence of child
// indices from the root of the affected page-data tree to the offending node.
type DecodeError struct {
	PropKey      string
	Path         []int
	AttributeKey string
	Message      string
}

// Error returns the string representation of the decode error.
func (e *DecodeError) Error() string {
	var sb strings.Builder
	sb.WriteString("widget configuration decode failed")
	if e.PropKey != "" {
		sb.WriteString(" for prop " + strconv.Quote(e.PropKey))
	}
	if len(e.Path) > 0 {
		indices := make([]string, len(e.Path))
		for i, idx := range e.Path {
			indices[i] = strconv.Itoa(idx)
		}
		sb.WriteString(" at node path [" + strings.Join(indices, ".") + "]")
	}
	if e.AttributeKey != "" {
		sb.WriteString(" attribute " + strconv.Quote(e.AttributeKey))
	}
	sb.WriteString(": " + e.Message)
	return sb.String()
}

// wireConfiguration mirrors the top-level wire shape of a widget configuration.
type wireConfiguration struct {
	ID    string                     `json:"id"`
	Name  string                     `json:"name"`
	Slug  string                     `json:"slug"`
	Meta  wireMeta                   `json:"meta"`
	Props map[string]json.RawMessage `json:"props"`
}

// wireMeta mirrors the widget meta block on the wire.
type wireMeta struct {
	Version       string `json:"version"`
	ComponentType string `json:"componentType"`
}

// wireProp mirrors a single prop entry on the wire. Value is kept raw since its
// shape differs across schema generations.
type wireProp struct {
	Value     json.RawMessage `json:"value"`
	ValueType string          `json:"valueType,omitempty"`
}

// wireTaggedValue is the current tagged-union shape of a prop value.
type wireTaggedValue struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// wireNode mirrors a configuration tree node on the wire. Style and attributes are
// kept raw: style needs order-preserving decoding and attributes need per-key
// variant validation.
type wireNode struct {
	ID            string                     `json:"id"`
	Kind          string                     `json:"kind"`
	Subtype       string                     `json:"subtype,omitempty"`
	TagName       string                     `json:"tagName,omitempty"`
	Style         json.RawMessage            `json:"style,omitempty"`
	Attributes    map[string]json.RawMessage `json:"attributes,omitempty"`
	Settings      map[string]json.RawMessage `json:"settings,omitempty"`
	TextContent   string                     `json:"textContent,omitempty"`
	Children      []json.RawMessage          `json:"children,omitempty"`
	SchemaVersion int                        `json:"schemaVersion,omitempty"`
}

// taggedValueTypePageData is the discriminator value of the current tagged prop shape.
const taggedValueTypePageData = "page-data"

// Decode normalizes a raw widget configuration payload into its canonical form.
// Prop values are decoded by attempting the known wire shapes in fixed precedence:
// the current tagged form first, then the legacy bare page-data object. The declared
// valueType string never decides the outcome, which is what keeps old and new server
// payloads interoperable without a client update.
func Decode(raw []byte) (*WidgetConfiguration, error) {
	var wire wireConfiguration
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &DecodeError{Message: "malformed configuration payload: " + err.Error()}
	}

	config := &WidgetConfiguration{
		ID:   wire.ID,
		Name: wire.Name,
		Slug: wire.Slug,
		Meta: WidgetMeta{
			Version:       wire.Meta.Version,
			ComponentType: wire.Meta.ComponentType,
		},
		Props: make(map[string]PropValue, len(wire.Props)),
	}

	for key, rawProp := range wire.Props {
		prop, err := decodeProp(key, rawProp)
		if err != nil {
			return nil, err
		}
		config.Props[key] = prop
	}

	return config, nil
}

// decodeProp decodes a single prop entry, resolving the prop value shape by precedence.
func decodeProp(propKey string, raw json.RawMessage) (PropValue, error) {
	var wire wireProp
	if err := json.Unmarshal(raw, &wire); err != nil {
		return PropValue{}, &DecodeError{PropKey: propKey, Message: "malformed prop entry: " + err.Error()}
	}
	if len(wire.Value) == 0 {
		return PropValue{}, &DecodeError{PropKey: propKey, Message: "prop entry has no value"}
	}

	root, err := decodePropValue(propKey, wire.Value)
	if err != nil {
		return PropValue{}, err
	}

	return PropValue{
		Value:     PropValueVariant{PageData: root},
		ValueType: wire.ValueType,
	}, nil
}

// decodePropValue resolves the prop value against the known shapes in precedence order.
func decodePropValue(propKey string, raw json.RawMessage) (*ConfigNode, error) {
	// Candidate 1: the current tagged-union shape.
	var tagged wireTaggedValue
	if err := json.Unmarshal(raw, &tagged); err == nil &&
		tagged.Type == taggedValueTypePageData && len(tagged.Data) > 0 {
		node, decErr := decodeNode(propKey, tagged.Data, nil)
		if decErr != nil {
			return nil, decErr
		}
		return node, nil
	}

	// Candidate 2: the legacy shape where the value itself is the page-data object,
	// whatever the declared valueType says.
	node, decErr := decodeNode(propKey, raw, nil)
	if decErr != nil {
		return nil, decErr
	}
	return node, nil
}

// decodeNode decodes a configuration tree node and, recursively, its children.
// The decode is strict: an invalid attribute or child anywhere aborts the whole
// decode rather than producing a partial tree.
func decodeNode(propKey string, raw json.RawMessage, path []int) (*ConfigNode, error) {
	var wire wireNode
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &DecodeError{PropKey: propKey, Path: clonePath(path),
			Message: "malformed node: " + err.Error()}
	}

	node := &ConfigNode{
		ID:            wire.ID,
		Kind:          wire.Kind,
		Subtype:       wire.Subtype,
		TagName:       wire.TagName,
		TextContent:   wire.TextContent,
		SchemaVersion: wire.SchemaVersion,
		Settings:      wire.Settings,
	}

	if len(wire.Style) > 0 {
		style, err := decodeStyle(propKey, wire.Style, path)
		if err != nil {
			return nil, err
		}
		node.Style = style
	}

	if len(wire.Attributes) > 0 {
		node.Attributes = make(map[string]AttributeValue, len(wire.Attributes))
		for attrKey, rawAttr := range wire.Attributes {
			attr, err := decodeAttribute(propKey, attrKey, rawAttr, path)
			if err != nil {
				return nil, err
			}
			node.Attributes[attrKey] = attr
		}
	}

	// Absent children means a leaf node, not an error.
	for i, rawChild := range wire.Children {
		child, err := decodeNode(propKey, rawChild, append(path, i))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, *child)
	}

	return node, nil
}

// decodeAttribute decodes a single attribute into its closed variant. A string
// becomes a string attribute, a boolean a bool attribute and a homogeneous string
// array a stringArray attribute. Any other JSON shape aborts the decode.
func decodeAttribute(propKey, attrKey string, raw json.RawMessage, path []int) (AttributeValue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return AttributeValue{}, &DecodeError{PropKey: propKey, Path: clonePath(path),
			AttributeKey: attrKey, Message: "attribute value is empty"}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return StringAttribute(s), nil
		}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err == nil {
			return BoolAttribute(b), nil
		}
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err == nil {
			return StringArrayAttribute(values), nil
		}
	}

	return AttributeValue{}, &DecodeError{PropKey: propKey, Path: clonePath(path), AttributeKey: attrKey,
		Message: fmt.Sprintf("unsupported attribute value shape: %s", truncateForError(trimmed))}
}

// decodeStyle decodes the style object preserving the declaration order of its keys.
func decodeStyle(propKey string, raw json.RawMessage, path []int) ([]StyleEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, &DecodeError{PropKey: propKey, Path: clonePath(path),
			Message: "malformed style object: " + err.Error()}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &DecodeError{PropKey: propKey, Path: clonePath(path),
			Message: "style must be an object of string values"}
	}

	var style []StyleEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &DecodeError{PropKey: propKey, Path: clonePath(path),
				Message: "malformed style object: " + err.Error()}
		}
		key, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, &DecodeError{PropKey: propKey, Path: clonePath(path),
				Message: "style value for " + strconv.Quote(key) + " must be a string"}
		}
		style = append(style, StyleEntry{Property: key, Value: value})
	}

	return style, nil
}

// clonePath copies the working path slice so stored errors are not aliased to it.
func clonePath(path []int) []int {
	if len(path) == 0 {
		return nil
	}
	return append([]int(nil), path...)
}

// truncateForError shortens a raw JSON fragment for inclusion in an error message.
func truncateForError(raw []byte) string {
	const limit = 64
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
