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

// Package service provides the implementation for session authentication
// operations: federated sign-in, session verification and revocation, and
// API key verification.
package service

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apikeymodel "github.com/halport/portal/internal/apikey/model"
	apikeystore "github.com/halport/portal/internal/apikey/store"
	"github.com/halport/portal/internal/authn/model"
	"github.com/halport/portal/internal/events"
	sessionmodel "github.com/halport/portal/internal/session/model"
	sessionstore "github.com/halport/portal/internal/session/store"
	"github.com/halport/portal/internal/system/config"
	"github.com/halport/portal/internal/system/crypto/hash"
	"github.com/halport/portal/internal/system/database/provider"
	"github.com/halport/portal/internal/system/jwt"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/utils"
	userservice "github.com/halport/portal/internal/user/service"
)

// AuthnServiceInterface defines the interface for the session authenticator.
type AuthnServiceInterface interface {
	Authenticate(request model.AuthenticateRequest) (*model.AuthenticateResponse, error)
	Verify(request model.VerifyRequest) (*model.AuthContext, error)
	Revoke(request model.RevokeRequest) error
	VerifyAPIKey(apiKey string) (*model.AuthContext, error)
}

// AuthnService is the default implementation of AuthnServiceInterface.
type AuthnService struct {
	tokenVerifier  jwt.TokenVerifierInterface
	userService    userservice.UserServiceInterface
	sessionStore   sessionstore.SessionStoreInterface
	apiKeyStore    apikeystore.APIKeyStoreInterface
	eventPublisher events.EventPublisherInterface
}

// GetAuthnService creates a new instance of AuthnService with the default
// collaborators.
func GetAuthnService() AuthnServiceInterface {
	dbProvider := provider.GetDBProvider()
	return &AuthnService{
		tokenVerifier:  jwt.GetTokenVerifier(),
		userService:    userservice.GetUserService(),
		sessionStore:   sessionstore.NewSessionStore(dbProvider),
		apiKeyStore:    apikeystore.NewAPIKeyStore(dbProvider),
		eventPublisher: events.GetEventPublisher(),
	}
}

// NewAuthnService creates an authentication service with the given collaborators.
func NewAuthnService(
	tokenVerifier jwt.TokenVerifierInterface,
	userService userservice.UserServiceInterface,
	sessionStore sessionstore.SessionStoreInterface,
	apiKeyStore apikeystore.APIKeyStoreInterface,
	eventPublisher events.EventPublisherInterface,
) AuthnServiceInterface {
	return &AuthnService{
		tokenVerifier:  tokenVerifier,
		userService:    userService,
		sessionStore:   sessionStore,
		apiKeyStore:    apiKeyStore,
		eventPublisher: eventPublisher,
	}
}

// Authenticate verifies a federated access token, upserts the user record
// keyed by email and mints a new session bound to the caller's network
// address and user agent.
func (as *AuthnService) Authenticate(request model.AuthenticateRequest) (*model.AuthenticateResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthnService"))

	claims, err := as.tokenVerifier.VerifyAccessToken(request.AccessToken)
	if err != nil {
		logger.Debug("Access token verification failed", log.Error(err))
		return nil, err
	}

	user, err := as.userService.UpsertUserByEmail(claims.Email, nil)
	if err != nil {
		return nil, err
	}

	portalConfig := config.GetPortalRuntime().Config
	sessionKey := utils.GenerateUUID()
	now := time.Now().UTC()

	session := sessionmodel.Session{
		SessionID:        sessionKey,
		UserID:           user.ID,
		SessionSignature: computeSessionSignature(sessionKey, request.IPAddress, request.UserAgent, portalConfig.Crypto.SessionSalt),
		IPAddress:        request.IPAddress,
		UserAgent:        request.UserAgent,
		DateCreated:      now,
		DateExpires:      now.Add(time.Duration(portalConfig.Session.ValidityPeriod) * time.Second),
	}

	if err := as.sessionStore.CreateSession(session); err != nil {
		return nil, err
	}

	as.eventPublisher.Publish(events.AuditEvent{
		Type:   events.EventSessionCreated,
		UserID: user.ID,
		Metadata: map[string]string{
			"sessionId": sessionKey,
			"ipAddress": request.IPAddress,
		},
	})

	logger.Info("Session created",
		log.String(log.LoggerKeyUserID, user.ID),
		log.String(log.LoggerKeySessionID, sessionKey))

	return &model.AuthenticateResponse{
		SessionToken: composeSessionToken(sessionKey, user.ID),
		User:         user,
	}, nil
}

// Verify validates a compound session token against the stored session.
// A malformed token, absent session, expired session or signature mismatch
// yields a nil context without an error: no session is not a hard failure.
func (as *AuthnService) Verify(request model.VerifyRequest) (*model.AuthContext, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthnService"))

	sessionKey, userID, err := parseSessionToken(request.SessionToken)
	if err != nil {
		return nil, nil
	}

	session, err := as.sessionStore.GetSession(userID, sessionKey)
	if err != nil {
		if errors.Is(err, sessionmodel.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now().UTC()
	if session.IsExpired(now) {
		return nil, nil
	}

	portalConfig := config.GetPortalRuntime().Config
	expected := computeSessionSignature(sessionKey, request.IPAddress, request.UserAgent, portalConfig.Crypto.SessionSalt)
	if !hash.Equal(expected, session.SessionSignature) {
		if logger.IsDebugEnabled() {
			logger.Debug("Session signature mismatch",
				log.String(log.LoggerKeyUserID, userID),
				log.String(log.LoggerKeySessionID, sessionKey))
		}
		return nil, nil
	}

	extendedExpiry := now.Add(time.Duration(portalConfig.Session.ExtensionPeriod) * time.Second)
	if err := as.sessionStore.ExtendSession(userID, sessionKey, now, extendedExpiry); err != nil &&
		!errors.Is(err, sessionmodel.ErrSessionNotFound) {
		logger.Warn("Failed to extend session", log.Error(err))
	}

	user, err := as.userService.GetUser(userID)
	if err != nil {
		return nil, err
	}

	return &model.AuthContext{
		Type:            model.AuthTypeSession,
		User:            user,
		SessionKey:      sessionKey,
		IPAddress:       request.IPAddress,
		UserAgent:       request.UserAgent,
		AuthenticatedAt: now,
	}, nil
}

// Revoke deletes the session matching the compound token. Revoking an
// already-gone or never-issued session is not an error.
func (as *AuthnService) Revoke(request model.RevokeRequest) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthnService"))

	sessionKey, userID, err := parseSessionToken(request.SessionToken)
	if err != nil {
		return nil
	}

	session, err := as.sessionStore.GetSession(userID, sessionKey)
	if err != nil {
		if errors.Is(err, sessionmodel.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	portalConfig := config.GetPortalRuntime().Config
	expected := computeSessionSignature(sessionKey, request.IPAddress, request.UserAgent, portalConfig.Crypto.SessionSalt)
	if !hash.Equal(expected, session.SessionSignature) {
		return nil
	}

	if err := as.sessionStore.DeleteSession(userID, sessionKey); err != nil {
		return err
	}

	as.eventPublisher.Publish(events.AuditEvent{
		Type:     events.EventSessionRevoked,
		UserID:   userID,
		Metadata: map[string]string{"sessionId": sessionKey},
	})

	logger.Info("Session revoked",
		log.String(log.LoggerKeyUserID, userID),
		log.String(log.LoggerKeySessionID, sessionKey))

	return nil
}

// VerifyAPIKey validates a compound API key of the form `keyID.secret`.
// An unknown, expired or mismatching key yields a nil context without an
// error.
func (as *AuthnService) VerifyAPIKey(apiKey string) (*model.AuthContext, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthnService"))

	parts := strings.SplitN(apiKey, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil
	}
	keyID, secret := parts[0], parts[1]

	record, err := as.apiKeyStore.GetAPIKeyByID(keyID)
	if err != nil {
		if errors.Is(err, apikeymodel.ErrAPIKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now().UTC()
	if record.IsExpired(now) {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.SecretHash), []byte(secret)); err != nil {
		if logger.IsDebugEnabled() {
			logger.Debug("API key secret mismatch", log.String(log.LoggerKeyAPIKeyID, keyID))
		}
		return nil, nil
	}

	if err := as.apiKeyStore.TouchAPIKey(keyID, now); err != nil {
		logger.Warn("Failed to record API key use", log.Error(err))
	}

	user, err := as.userService.GetUser(record.UserID)
	if err != nil {
		return nil, err
	}

	as.eventPublisher.Publish(events.AuditEvent{
		Type:     events.EventAPIKeyVerified,
		UserID:   record.UserID,
		Metadata: map[string]string{"apiKeyId": keyID},
	})

	return &model.AuthContext{
		Type:            model.AuthTypeAPIKey,
		User:            user,
		APIKeyID:        keyID,
		Description:     record.Description,
		AuthenticatedAt: now,
	}, nil
}
