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

package halclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/halport/portal/internal/system/log"
)

// sitemapRel is the entry-point relation pointing at the navigation tree.
const sitemapRel = "sitemap"

// sitemapMaxAttempts bounds the fetch retries.
const sitemapMaxAttempts = 3

// sitemapRetryBase is multiplied by the attempt number to get the retry delay.
const sitemapRetryBase = 500 * time.Millisecond

// ErrSitemapUnavailable is returned when the entry point declares no
// sitemap relation.
var ErrSitemapUnavailable = errors.New("entry point declares no sitemap relation")

// SitemapNode is one node of the hierarchical navigation document. Group
// nodes carry child items and no href; leaf items carry the href of the
// resource they open.
type SitemapNode struct {
	Title string        `json:"title"`
	Href  string        `json:"href,omitempty"`
	Icon  string        `json:"icon,omitempty"`
	Items []SitemapNode `json:"items,omitempty"`
}

// FetchSitemap resolves the sitemap relation from the entry point and
// fetches the navigation tree. Failures are retried up to three times with
// a linearly growing delay; each failure is logged and the final one
// propagated.
func FetchSitemap(ctx context.Context, executor *Executor) (*SitemapNode, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "SitemapFetcher"))

	var lastErr error
	for attempt := 1; attempt <= sitemapMaxAttempts; attempt++ {
		root, err := fetchSitemapOnce(ctx, executor)
		if err == nil {
			return root, nil
		}
		if errors.Is(err, ErrSitemapUnavailable) {
			return nil, err
		}
		lastErr = err
		logger.Warn("Sitemap fetch attempt failed",
			log.Int("attempt", attempt), log.Error(err))

		if attempt == sitemapMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sitemapRetryBase * time.Duration(attempt)):
		}
	}
	return nil, lastErr
}

// fetchSitemapOnce fetches and decodes the navigation tree a single time.
func fetchSitemapOnce(ctx context.Context, executor *Executor) (*SitemapNode, error) {
	resource, err := executor.FetchLink(ctx, []string{sitemapRel}, nil)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, ErrSitemapUnavailable
	}

	root := &SitemapNode{Title: resource.SelfTitle()}

	rawItems, ok := resource.Fields["items"]
	if !ok {
		return root, nil
	}
	if err := json.Unmarshal(rawItems, &root.Items); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap items: %w", err)
	}
	return root, nil
}
