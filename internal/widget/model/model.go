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

// Package model defines the canonical in-memory representation of a widget configuration tree.
package model

import (
	"encoding/json"
)

// AttributeKind identifies the concrete variant held by an AttributeValue.
type AttributeKind string

const (
	// AttributeKindString denotes a plain string attribute value.
	AttributeKindString AttributeKind = "string"
	// AttributeKindBool denotes a boolean attribute value.
	AttributeKindBool AttributeKind = "bool"
	// AttributeKindStringArray denotes a homogeneous string array attribute value.
	AttributeKindStringArray AttributeKind = "stringArray"
)

// AttributeValue is a closed variant over string, bool and string array attribute values.
// Any other wire shape is rejected at decode time.
type AttributeValue struct {
	Kind        AttributeKind
	StringValue string
	BoolValue   bool
	ArrayValue  []string
}

// StringAttribute constructs a string attribute value.
func StringAttribute(value string) AttributeValue {
	return AttributeValue{Kind: AttributeKindString, StringValue: value}
}

// BoolAttribute constructs a boolean attribute value.
func BoolAttribute(value bool) AttributeValue {
	return AttributeValue{Kind: AttributeKindBool, BoolValue: value}
}

// StringArrayAttribute constructs a string array attribute value.
func StringArrayAttribute(values []string) AttributeValue {
	return AttributeValue{Kind: AttributeKindStringArray, ArrayValue: values}
}

// Equals reports whether two attribute values hold the same variant with the same content.
func (a AttributeValue) Equals(other AttributeValue) bool {
	if a.Kind != other.Kind {
		return false
	}
	switch a.Kind {
	case AttributeKindString:
		return a.StringValue == other.StringValue
	case AttributeKindBool:
		return a.BoolValue == other.BoolValue
	case AttributeKindStringArray:
		if len(a.ArrayValue) != len(other.ArrayValue) {
			return false
		}
		for i, v := range a.ArrayValue {
			if other.ArrayValue[i] != v {
				return false
			}
		}
		return true
	}
	return false
}

// StyleEntry is a single ordered style declaration on a node.
type StyleEntry struct {
	Property string
	Value    string
}

// ConfigNode is a node in the widget configuration tree. Children ordering is the
// rendering order and is preserved through decode and encode.
type ConfigNode struct {
	ID            string
	Kind          string
	Subtype       string
	TagName       string
	Style         []StyleEntry
	Attributes    map[string]AttributeValue
	Settings      map[string]json.RawMessage
	TextContent   string
	Children      []ConfigNode
	SchemaVersion int
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (n *ConfigNode) Depth() int {
	maxChild := 0
	for i := range n.Children {
		if d := n.Children[i].Depth(); d > maxChild {
			maxChild = d
		}
	}
	return maxChild + 1
}

// FindBySubtype returns the first node in document order with the given subtype, or nil.
func (n *ConfigNode) FindBySubtype(subtype string) *ConfigNode {
	if n.Subtype == subtype {
		return n
	}
	for i := range n.Children {
		if found := n.Children[i].FindBySubtype(subtype); found != nil {
			return found
		}
	}
	return nil
}

// PropValueVariant is a closed variant over the supported prop value payloads.
// pageData is the only currently meaningful case.
type PropValueVariant struct {
	PageData *ConfigNode
}

// PropValue is a single widget prop carrying its payload and the wire-level value
// type discriminator. The discriminator is informational only: decoding never keys
// off it (see the decoder precedence order in decode.go).
type PropValue struct {
	Value     PropValueVariant
	ValueType string
}

// WidgetMeta carries the widget-level versioning metadata.
type WidgetMeta struct {
	Version       string
	ComponentType string
}

// WidgetConfiguration is the decoded form of a server-delivered widget configuration.
type WidgetConfiguration struct {
	ID    string
	Name  string
	Slug  string
	Meta  WidgetMeta
	Props map[string]PropValue
}

// PageData returns the page-data tree stored under the given prop key, or nil when
// the key is absent.
func (c *WidgetConfiguration) PageData(propKey string) *ConfigNode {
	if c == nil {
		return nil
	}
	prop, ok := c.Props[propKey]
	if !ok {
		return nil
	}
	return prop.Value.PageData
}
