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
	"strings"
	"sync"
	"time"

	"github.com/halport/portal/internal/hal"
	"github.com/halport/portal/internal/system/utils"
)

// NavigationSource identifies how a resource entered the navigation history.
type NavigationSource string

const (
	// SourceMenu marks a navigation started from a sitemap menu entry.
	SourceMenu NavigationSource = "menu"
	// SourceLink marks organic link-following within a resource.
	SourceLink NavigationSource = "link"
	// SourceBrowser marks browser-driven navigation such as history traversal.
	SourceBrowser NavigationSource = "browser"
)

// dashboardLabel is the fixed root breadcrumb title.
const dashboardLabel = "Dashboard"

// fallbackCrumbLabel is used when a resource declares no self title.
const fallbackCrumbLabel = "Resource"

// HistoryItem is one visited resource in the navigation trail.
type HistoryItem struct {
	Resource     *hal.Resource
	Href         string
	Source       NavigationSource
	Timestamp    time.Time
	ParentGroups []string
}

// Crumb is one rendered breadcrumb segment.
type Crumb struct {
	Title     string
	Href      string
	Clickable bool
}

// History maintains the ordered trail of visited hypermedia resources and
// derives breadcrumbs from self-link metadata plus sitemap group membership.
// No static route table is consulted at any point.
type History struct {
	mu            sync.Mutex
	entries       []HistoryItem
	dashboardHref string
	menuPending   bool
	mounted       bool
}

// NewHistory creates a navigation history rooted at the dashboard href.
func NewHistory(dashboardHref string) *History {
	return &History{dashboardHref: dashboardHref}
}

// MarkMenuNavigation flags the next tracked resource as menu-initiated.
// The flag is consumed by exactly one Track call.
func (h *History) MarkMenuNavigation() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.menuPending = true
}

// Track records a freshly loaded resource in the trail.
//
// The current href resolves from the self link, then the self template
// target, then the supplied pathname. Tracking the same href twice in a row
// is a no-op. Menu navigation and dashboard loads reset the trail; anything
// else with a new href is appended as link-following.
func (h *History) Track(resource *hal.Resource, currentPath string, sitemap *SitemapNode) {
	h.mu.Lock()
	defer h.mu.Unlock()

	menuNavigation := h.menuPending
	h.menuPending = false

	initialMount := !h.mounted
	h.mounted = true

	currentHref := resource.SelfHref()
	if currentHref == "" {
		currentHref = currentPath
	}

	if len(h.entries) > 0 && h.entries[len(h.entries)-1].Href == currentHref {
		return
	}

	if resource.Link(hal.SelfRel) == nil {
		if _, ok := resource.Template(hal.SelfRel); !ok {
			resource.AddLink(hal.SelfRel, hal.Link{
				Href:  currentHref,
				Title: deriveTitle(currentPath),
			})
		}
	}

	switch {
	case menuNavigation:
		h.entries = []HistoryItem{{
			Resource:     resource,
			Href:         currentHref,
			Source:       SourceMenu,
			Timestamp:    time.Now(),
			ParentGroups: findParentGroups(sitemap, currentHref),
		}}
	case len(h.entries) == 0, currentHref == h.dashboardHref && initialMount:
		h.entries = []HistoryItem{{
			Resource:  resource,
			Href:      currentHref,
			Source:    SourceBrowser,
			Timestamp: time.Now(),
		}}
	case currentHref == h.dashboardHref:
		// Returning to the dashboard starts a fresh trail.
		h.entries = []HistoryItem{{
			Resource:  resource,
			Href:      currentHref,
			Source:    SourceBrowser,
			Timestamp: time.Now(),
		}}
	default:
		h.entries = append(h.entries, HistoryItem{
			Resource:  resource,
			Href:      currentHref,
			Source:    SourceLink,
			Timestamp: time.Now(),
		})
	}
}

// Entries returns a copy of the current trail.
func (h *History) Entries() []HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := make([]HistoryItem, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Reset clears the trail and the pending menu flag.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.menuPending = false
	h.mounted = false
}

// Breadcrumbs derives the breadcrumb trail purely from the tracked history.
//
// The trail always starts with a Dashboard crumb, which is clickable only
// when deeper entries follow it. Parent groups are inserted once each,
// deduplicated by title and never clickable. The final crumb is the current
// resource and is not clickable. When the current resource has not yet been
// tracked, the trail ends at the last known entry rather than showing a
// synthetic placeholder.
func (h *History) Breadcrumbs() []Crumb {
	h.mu.Lock()
	defer h.mu.Unlock()

	deeper := false
	for _, entry := range h.entries {
		if entry.Href != h.dashboardHref {
			deeper = true
			break
		}
	}

	crumbs := []Crumb{{
		Title:     dashboardLabel,
		Href:      h.dashboardHref,
		Clickable: deeper,
	}}

	seenGroups := make(map[string]bool)
	for i, entry := range h.entries {
		if entry.Href == h.dashboardHref {
			continue
		}

		for _, group := range entry.ParentGroups {
			if seenGroups[group] {
				continue
			}
			seenGroups[group] = true
			crumbs = append(crumbs, Crumb{Title: group})
		}

		title := entry.Resource.SelfTitle()
		if title == "" {
			title = fallbackCrumbLabel
		}
		crumbs = append(crumbs, Crumb{
			Title:     title,
			Href:      entry.Href,
			Clickable: i != len(h.entries)-1,
		})
	}

	return crumbs
}

// deriveTitle builds a display title from the last meaningful path segment,
// skipping trailing "list" segments.
func deriveTitle(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		if segment == "" || strings.EqualFold(segment, "list") {
			continue
		}
		return utils.TitleCaseSegment(segment)
	}
	return fallbackCrumbLabel
}

// findParentGroups walks the sitemap tree for an item whose href matches,
// accumulating the group titles passed through on the way down.
func findParentGroups(sitemap *SitemapNode, href string) []string {
	if sitemap == nil {
		return nil
	}
	return walkGroups(sitemap.Items, href, nil)
}

func walkGroups(nodes []SitemapNode, href string, trail []string) []string {
	for _, node := range nodes {
		if node.Href == href {
			groups := make([]string, len(trail))
			copy(groups, trail)
			return groups
		}
		if len(node.Items) > 0 {
			if found := walkGroups(node.Items, href, append(trail, node.Title)); found != nil {
				return found
			}
		}
	}
	return nil
}
