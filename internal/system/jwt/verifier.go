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

// Package jwt provides verification of federated access tokens against the
// configured identity provider.
package jwt

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/halport/portal/internal/system/config"
	httpservice "github.com/halport/portal/internal/system/http"
)

// ErrInvalidToken is returned when the access token fails verification for
// any reason: bad signature, wrong issuer or audience, or expiry.
var ErrInvalidToken = errors.New("invalid access token")

// TokenClaims carries the identity claims extracted from a verified token.
type TokenClaims struct {
	Subject string
	Email   string
}

// TokenVerifierInterface defines the interface for access token verification.
type TokenVerifierInterface interface {
	VerifyAccessToken(accessToken string) (*TokenClaims, error)
}

// TokenVerifier verifies RS256 access tokens using the identity provider's
// published key set.
type TokenVerifier struct {
	resolver *jwksResolver
}

var (
	instance *TokenVerifier
	once     sync.Once
)

// GetTokenVerifier returns a singleton instance of TokenVerifier.
func GetTokenVerifier() TokenVerifierInterface {
	once.Do(func() {
		instance = &TokenVerifier{
			resolver: newJWKSResolver(httpservice.GetHTTPClient()),
		}
	})
	return instance
}

// NewTokenVerifier creates a verifier using the given HTTP client.
func NewTokenVerifier(httpClient httpservice.HTTPClientInterface) TokenVerifierInterface {
	return &TokenVerifier{resolver: newJWKSResolver(httpClient)}
}

// VerifyAccessToken validates the token signature, issuer, audience and
// expiry against the configured identity provider, returning the identity
// claims on success.
func (tv *TokenVerifier) VerifyAccessToken(accessToken string) (*TokenClaims, error) {
	idpConfig := config.GetPortalRuntime().Config.IdentityProvider

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(idpConfig.Issuer),
		jwt.WithExpirationRequired(),
	}
	if idpConfig.Audience != "" {
		parserOptions = append(parserOptions, jwt.WithAudience(idpConfig.Audience))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header has no kid")
		}
		return tv.resolver.resolveKey(idpConfig.JWKSEndpoint, kid)
	}, parserOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		// Some providers put the address in the username claim instead.
		email, _ = claims["username"].(string)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	return &TokenClaims{Subject: subject, Email: email}, nil
}
