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

package config

import "sync"

// PortalRuntime holds the runtime configuration for the portal server.
type PortalRuntime struct {
	PortalHome string `yaml:"portal_home"`
	Config     Config `yaml:"config"`
}

var (
	runtimeConfig *PortalRuntime
	once          sync.Once
)

// InitializePortalRuntime initializes the PortalRuntime configuration.
func InitializePortalRuntime(portalHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &PortalRuntime{
			PortalHome: portalHome,
			Config:     *config,
		}
	})

	return nil
}

// GetPortalRuntime returns the PortalRuntime configuration.
func GetPortalRuntime() *PortalRuntime {
	if runtimeConfig == nil {
		panic("PortalRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetPortalRuntime resets the PortalRuntime.
// This should only be used in tests to reset the singleton state.
func ResetPortalRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
