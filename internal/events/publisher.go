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

// Package events publishes audit events for security-relevant operations.
// Publishing is best effort: a broker outage never fails the operation that
// triggered the event.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/halport/portal/internal/system/config"
	"github.com/halport/portal/internal/system/log"
)

// Audit event types emitted by the portal.
const (
	EventSessionCreated  = "session.created"
	EventSessionRevoked  = "session.revoked"
	EventSessionsCleared = "sessions.cleared"
	EventAPIKeyCreated   = "apikey.created"
	EventAPIKeyRevoked   = "apikey.revoked"
	EventAPIKeyVerified  = "apikey.verified"
)

// publishTimeout bounds a single publish attempt.
const publishTimeout = 5 * time.Second

// AuditEvent is one security-relevant occurrence.
type AuditEvent struct {
	Type      string            `json:"type"`
	UserID    string            `json:"userId,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EventPublisherInterface defines the interface for publishing audit events.
type EventPublisherInterface interface {
	Publish(event AuditEvent)
	Close()
}

// EventPublisher publishes audit events to a RabbitMQ exchange. When events
// are disabled in the configuration, every publish is a no-op.
type EventPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	url      string
	disabled bool
}

var (
	instance *EventPublisher
	once     sync.Once
)

// GetEventPublisher returns a singleton instance of EventPublisher.
func GetEventPublisher() EventPublisherInterface {
	once.Do(func() {
		eventsConfig := config.GetPortalRuntime().Config.Events
		instance = &EventPublisher{
			url:      eventsConfig.URL,
			exchange: eventsConfig.Exchange,
			disabled: eventsConfig.Disabled || eventsConfig.URL == "",
		}
	})
	return instance
}

// Publish sends an audit event to the configured exchange. Failures are
// logged and swallowed.
func (p *EventPublisher) Publish(event AuditEvent) {
	if p.disabled {
		return
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "EventPublisher"))

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal audit event", log.Error(err))
		return
	}

	channel, err := p.getChannel()
	if err != nil {
		logger.Warn("Failed to connect to event broker", log.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   event.Timestamp,
		Body:        body,
	})
	if err != nil {
		logger.Warn("Failed to publish audit event",
			log.String("event_type", event.Type), log.Error(err))
		p.resetConnection()
		return
	}

	if logger.IsDebugEnabled() {
		logger.Debug("Published audit event", log.String("event_type", event.Type))
	}
}

// Close shuts down the broker connection.
func (p *EventPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

// getChannel returns the open channel, dialing the broker when needed.
func (p *EventPublisher) getChannel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil && !p.conn.IsClosed() {
		return p.channel, nil
	}
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.GetLogger().Warn("Failed to close broker connection", log.Error(closeErr))
		}
		return nil, err
	}

	err = channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.GetLogger().Warn("Failed to close broker connection", log.Error(closeErr))
		}
		return nil, err
	}

	p.conn = conn
	p.channel = channel
	return channel, nil
}

// resetConnection drops the broker connection so the next publish redials.
func (p *EventPublisher) resetConnection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *EventPublisher) closeLocked() {
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil {
			log.GetLogger().Warn("Failed to close broker connection", log.Error(err))
		}
	}
	p.conn = nil
	p.channel = nil
}
