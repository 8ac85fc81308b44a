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

// Package config provides structures and functions for loading and managing SDK configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/vrtxlabs/invitekit/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// EndpointConfig holds the connection details for a single server endpoint.
type EndpointConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// EndpointsConfig holds the server endpoints the SDK talks to.
type EndpointsConfig struct {
	Configuration EndpointConfig `yaml:"configuration"`
	Invitations   EndpointConfig `yaml:"invitations"`
	Share         EndpointConfig `yaml:"share"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// PersistenceConfig holds the snapshot persistence configuration details.
type PersistenceConfig struct {
	Disabled   bool       `yaml:"disabled"`
	DataSource DataSource `yaml:"datasource"`
}

// AnalyticsConfig holds the analytics emitter configuration details.
type AnalyticsConfig struct {
	Disabled bool   `yaml:"disabled"`
	Endpoint string `yaml:"endpoint"`
	Timeout  int    `yaml:"timeout"`
}

// ContactsConfig holds the contact source configuration details.
type ContactsConfig struct {
	GoogleEnabled bool   `yaml:"google_enabled"`
	GoogleBaseURL string `yaml:"google_base_url"`
}

// Config holds the complete configuration details of the SDK.
type Config struct {
	Endpoints   EndpointsConfig   `yaml:"endpoints"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Analytics   AnalyticsConfig   `yaml:"analytics"`
	Contacts    ContactsConfig    `yaml:"contacts"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
