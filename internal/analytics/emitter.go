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

// Package analytics provides the fire-and-forget analytics event emitter. Event
// delivery is detached from the flow transitions it annotates: a failed or slow
// emit can never block or fail user-visible progress.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vrtxlabs/invitekit/internal/system/config"
	"github.com/vrtxlabs/invitekit/internal/system/constants"
	syshttp "github.com/vrtxlabs/invitekit/internal/system/http"
	"github.com/vrtxlabs/invitekit/internal/system/log"
	"github.com/vrtxlabs/invitekit/internal/system/utils"
)

const loggerComponentName = "AnalyticsEmitter"

// defaultEmitTimeout bounds a single event delivery attempt in seconds.
const defaultEmitTimeout = 10

// Event is a single analytics event.
type Event struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	FlowID     string            `json:"flowId,omitempty"`
	Timestamp  int64             `json:"timestamp"`
	Properties map[string]string `json:"properties,omitempty"`
}

// EventEmitterInterface defines the interface for publishing analytics events.
type EventEmitterInterface interface {
	// Publish delivers the event on a detached task. It returns immediately and
	// swallows delivery failures.
	Publish(event Event)
}

// EventEmitter is the default HTTP-backed implementation of the EventEmitterInterface.
type EventEmitter struct {
	cfg        config.AnalyticsConfig
	httpClient syshttp.HTTPClientInterface
}

// NewEventEmitter creates a new analytics event emitter.
func NewEventEmitter(cfg config.AnalyticsConfig, httpClient syshttp.HTTPClientInterface) EventEmitterInterface {
	return &EventEmitter{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Publish delivers the event in the background. Failures are logged and dropped.
func (e *EventEmitter) Publish(event Event) {
	if e.cfg.Disabled || e.cfg.Endpoint == "" {
		return
	}

	if event.ID == "" {
		event.ID = utils.GenerateUUID()
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	go e.deliver(event)
}

// deliver performs one delivery attempt for the event.
func (e *EventEmitter) deliver(event Event) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String("event", event.Name))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic during event delivery", log.Any("panic", r))
		}
	}()

	body, err := json.Marshal(event)
	if err != nil {
		logger.Warn("Failed to marshal analytics event", log.Error(err))
		return
	}

	timeout := e.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultEmitTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		logger.Warn("Failed to create analytics request", log.Error(err))
		return
	}
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		logger.Warn("Failed to deliver analytics event", log.Error(err))
		return
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Error closing response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Analytics endpoint rejected event", log.Int("statusCode", resp.StatusCode))
	}
}
