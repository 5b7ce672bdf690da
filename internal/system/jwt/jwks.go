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

package jwt

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/halport/portal/internal/system/cache"
	httpservice "github.com/halport/portal/internal/system/http"
	"github.com/halport/portal/internal/system/log"
)

// jwksCacheName identifies the cache holding fetched key sets per endpoint.
const jwksCacheName = "JWKSCache"

// jsonWebKey is a single key of a JWKS document.
type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
}

// jwksDocument is the JWKS endpoint response.
type jwksDocument struct {
	Keys []jsonWebKey `json:"keys"`
}

// jwksResolver fetches and caches the identity provider's key set.
type jwksResolver struct {
	httpClient httpservice.HTTPClientInterface
	keyCache   cache.CacheInterface[jwksDocument]
}

func newJWKSResolver(httpClient httpservice.HTTPClientInterface) *jwksResolver {
	return &jwksResolver{
		httpClient: httpClient,
		keyCache:   cache.GetCache[jwksDocument](jwksCacheName),
	}
}

// resolveKey returns the RSA public key with the given key ID, fetching the
// key set when it is not cached. An unknown kid forces one refetch so key
// rotation is picked up without waiting for cache expiry.
func (r *jwksResolver) resolveKey(jwksURL, kid string) (*rsa.PublicKey, error) {
	cacheKey := cache.CacheKey{Key: jwksURL}

	if doc, ok := r.keyCache.Get(cacheKey); ok {
		if key, err := findKey(doc, kid); err == nil {
			return key, nil
		}
	}

	doc, err := r.fetchKeySet(jwksURL)
	if err != nil {
		return nil, err
	}

	if cacheErr := r.keyCache.Set(cacheKey, *doc); cacheErr != nil {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "JWKSResolver"))
		logger.Warn("Failed to cache JWKS document", log.Error(cacheErr))
	}

	return findKey(*doc, kid)
}

// fetchKeySet retrieves the JWKS document from the endpoint.
func (r *jwksResolver) fetchKeySet(jwksURL string) (*jwksDocument, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "JWKSResolver"))

	resp, err := r.httpClient.Get(jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS document: %w", err)
	}
	return &doc, nil
}

// findKey locates a key by ID and converts it to an RSA public key.
func findKey(doc jwksDocument, kid string) (*rsa.PublicKey, error) {
	for _, key := range doc.Keys {
		if key.Kid == kid && key.Kty == "RSA" {
			return jwkToRSAPublicKey(key)
		}
	}
	return nil, fmt.Errorf("no RSA key found for kid %q", kid)
}

// jwkToRSAPublicKey converts a JWK to an RSA public key.
func jwkToRSAPublicKey(jwk jsonWebKey) (*rsa.PublicKey, error) {
	if jwk.N == "" || jwk.E == "" {
		return nil, errors.New("invalid JWK format, missing 'n' or 'e' parameter")
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	var eInt int
	for i := 0; i < len(eBytes); i++ {
		eInt = eInt<<8 + int(eBytes[i])
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: eInt,
	}, nil
}
