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

// Package main is the entry point for the invitekit inspect tool. It decodes a
// widget configuration document from a file and prints the recovered tree, which
// is useful for checking what a given server payload will look like to the SDK.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/vrtxlabs/invitekit/internal/system/config"
	"github.com/vrtxlabs/invitekit/internal/system/log"
	"github.com/vrtxlabs/invitekit/internal/widget/constants"
	widgetmodel "github.com/vrtxlabs/invitekit/internal/widget/model"
)

func main() {
	logger := log.GetLogger()

	configPath := flag.String("config", "", "Path to the invitekit config file (optional)")
	propKey := flag.String("prop", constants.FormWidgetPropKey, "Configuration prop to expand as a tree")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-config <path>] [-prop <key>] <widget-config.json>")
		os.Exit(2)
	}

	if *configPath != "" {
		initRuntime(logger, *configPath)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Fatal("Failed to read widget configuration file", log.Error(err))
	}

	widgetConfig, err := widgetmodel.Decode(raw)
	if err != nil {
		logger.Fatal("Failed to decode widget configuration", log.Error(err))
	}
	logger.Debug("Decoded widget configuration", log.String(log.LoggerKeyWidgetID, widgetConfig.ID))

	printConfiguration(widgetConfig, *propKey)
}

// initRuntime loads the config file and initializes the runtime singleton.
func initRuntime(logger *log.Logger, configPath string) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	home := path.Dir(configPath)
	if err := config.InitializeInviteKitRuntime(home, cfg); err != nil {
		logger.Fatal("Failed to initialize invitekit runtime", log.Error(err))
	}
}

func printConfiguration(widgetConfig *widgetmodel.WidgetConfiguration, propKey string) {
	fmt.Printf("widget %s (%s)\n", widgetConfig.ID, widgetConfig.Name)
	if widgetConfig.Slug != "" {
		fmt.Printf("  slug: %s\n", widgetConfig.Slug)
	}
	if widgetConfig.Meta.ComponentType != "" {
		fmt.Printf("  component type: %s\n", widgetConfig.Meta.ComponentType)
	}
	fmt.Printf("  props: %d\n", len(widgetConfig.Props))

	root := widgetConfig.PageData(propKey)
	if root == nil {
		fmt.Printf("  prop %q carries no page data\n", propKey)
		return
	}

	fmt.Printf("  prop %q: depth %d\n", propKey, root.Depth())
	printNode(root, 1)
}

func printNode(node *widgetmodel.ConfigNode, indent int) {
	pad := strings.Repeat("  ", indent)

	label := node.Kind
	if node.Subtype != "" {
		label = fmt.Sprintf("%s/%s", label, node.Subtype)
	}
	fmt.Printf("%s- %s", pad, label)
	if node.TagName != "" {
		fmt.Printf(" <%s>", node.TagName)
	}
	if node.TextContent != "" {
		fmt.Printf(" %q", node.TextContent)
	}
	fmt.Println()

	for key, attr := range node.Attributes {
		fmt.Printf("%s    @%s=%s\n", pad, key, formatAttribute(attr))
	}
	for _, entry := range node.Style {
		fmt.Printf("%s    style %s: %s\n", pad, entry.Property, entry.Value)
	}

	for i := range node.Children {
		printNode(&node.Children[i], indent+1)
	}
}

func formatAttribute(attr widgetmodel.AttributeValue) string {
	switch attr.Kind {
	case widgetmodel.AttributeKindBool:
		return fmt.Sprintf("%t", attr.BoolValue)
	case widgetmodel.AttributeKindStringArray:
		return "[" + strings.Join(attr.ArrayValue, ",") + "]"
	default:
		return attr.StringValue
	}
}
