package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoStorage is returned when no storage location has been configured.
var ErrNoStorage = errors.New("no storage configured")

// StorageFactory opens a storage rooted at path.
// Drivers register one from init to avoid an import cycle with this package.
type StorageFactory func(path string) (Storage, error)

var drivers = map[string]StorageFactory{}

// RegisterDriver registers a storage driver under name.
func RegisterDriver(name string, factory StorageFactory) {
	drivers[name] = factory
}

// Drivers returns the registered driver names in sorted order.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewStorage opens the storage for the given driver.
func NewStorage(driver, path string) (Storage, error) {
	if path == "" {
		return nil, ErrNoStorage
	}
	factory, ok := drivers[driver]
	if !ok {
		return nil, fmt.Errorf("unknown storage driver: %s (available: %s)", driver, strings.Join(Drivers(), ", "))
	}
	return factory(path)
}
