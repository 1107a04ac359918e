// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/gogpu/aspect/render"
)

// EnvBackend names the environment variable that overrides the backend
// chosen by Default.
const EnvBackend = "ASPECT_BACKEND"

var (
	registryMu sync.RWMutex
	backends   = make(map[string]DeviceFactory)
	priority   = []string{BackendWGPU, BackendRecorder}
)

// Register registers a device factory with the given name. It is
// typically called from init() functions in backend packages. A backend
// with the same name is replaced.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	registryMu.RUnlock()

	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get creates a device from the named backend.
func Get(name string, width, height uint32) (render.Device, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(width, height), nil
}

// Default creates a device from the best available backend and returns
// its name. A registered backend named by $ASPECT_BACKEND is preferred;
// otherwise wgpu is chosen over the recorder. Factories returning nil are
// skipped.
func Default(width, height uint32) (render.Device, string) {
	order := priority
	if env := os.Getenv(EnvBackend); env != "" {
		order = append([]string{env}, priority...)
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, name := range order {
		factory, ok := backends[name]
		if !ok {
			continue
		}
		if dev := factory(width, height); dev != nil {
			return dev, name
		}
	}
	return nil, ""
}
