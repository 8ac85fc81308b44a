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
	"strconv"
)

// Encode serializes a widget configuration back to its wire form. The output uses
// the current tagged prop value shape, so Decode(Encode(c)) yields c for any
// configuration produced by Decode regardless of which historical shape it came from.
func Encode(config *WidgetConfiguration) ([]byte, error) {
	wire := wireConfiguration{
		ID:   config.ID,
		Name: config.Name,
		Slug: config.Slug,
		Meta: wireMeta{
			Version:       config.Meta.Version,
			ComponentType: config.Meta.ComponentType,
		},
		Props: make(map[string]json.RawMessage, len(config.Props)),
	}

	for key, prop := range config.Props {
		encoded, err := encodeProp(prop)
		if err != nil {
			return nil, err
		}
		wire.Props[key] = encoded
	}

	return json.Marshal(wire)
}

// encodeProp serializes a single prop entry in the current tagged shape.
func encodeProp(prop PropValue) (json.RawMessage, error) {
	data, err := encodeNode(prop.Value.PageData)
	if err != nil {
		return nil, err
	}

	tagged, err := json.Marshal(wireTaggedValue{
		Type: taggedValueTypePageData,
		Data: data,
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(wireProp{
		Value:     tagged,
		ValueType: prop.ValueType,
	})
}

// encodeNode serializes a configuration tree node and its children.
func encodeNode(node *ConfigNode) (json.RawMessage, error) {
	if node == nil {
		return json.RawMessage("null"), nil
	}

	wire := wireNode{
		ID:            node.ID,
		Kind:          node.Kind,
		Subtype:       node.Subtype,
		TagName:       node.TagName,
		Settings:      node.Settings,
		TextContent:   node.TextContent,
		SchemaVersion: node.SchemaVersion,
	}

	if len(node.Style) > 0 {
		style, err := encodeStyle(node.Style)
		if err != nil {
			return nil, err
		}
		wire.Style = style
	}

	if len(node.Attributes) > 0 {
		wire.Attributes = make(map[string]json.RawMessage, len(node.Attributes))
		for key, attr := range node.Attributes {
			encoded, err := encodeAttribute(attr)
			if err != nil {
				return nil, err
			}
			wire.Attributes[key] = encoded
		}
	}

	for i := range node.Children {
		child, err := encodeNode(&node.Children[i])
		if err != nil {
			return nil, err
		}
		wire.Children = append(wire.Children, child)
	}

	return json.Marshal(wire)
}

// encodeAttribute serializes an attribute value according to its variant.
func encodeAttribute(attr AttributeValue) (json.RawMessage, error) {
	switch attr.Kind {
	case AttributeKindString:
		return json.Marshal(attr.StringValue)
	case AttributeKindBool:
		return json.Marshal(attr.BoolValue)
	case AttributeKindStringArray:
		return json.Marshal(attr.ArrayValue)
	}
	return nil, &DecodeError{Message: "cannot encode attribute of unknown kind " + strconv.Quote(string(attr.Kind))}
}

// encodeStyle serializes the ordered style entries as a JSON object, keeping the
// declaration order of the properties.
func encodeStyle(style []StyleEntry) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range style {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Property)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
