package converters

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/darianmavgo/mkinsert/converters/common"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]common.Driver)
)

// Register makes a converter driver available by the provided name.
// If Register is called twice with the same name or if driver is nil, it panics.
func Register(name string, driver common.Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("converters: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("converters: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

// Open opens a converter by driver name and source reader.
func Open(driverName string, source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	driversMu.RLock()
	driver, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("converters: unknown driver %q (forgotten import?)", driverName)
	}
	return driver.Open(source, config)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// DriverForPath picks a driver name from a file extension. Anything that is
// not a spreadsheet, an HTML page or Markdown is read as delimited text.
func DriverForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "excel"
	case ".html", ".htm":
		return "html"
	case ".md", ".markdown":
		return "markdown"
	}
	return "csv"
}

// SelectTable returns the provider table matching name, compared either
// directly or after sanitizing it the way drivers name tables. An empty
// name selects the first table.
func SelectTable(provider common.RowProvider, name string) (string, error) {
	tables := provider.GetTableNames()
	if len(tables) == 0 {
		return "", fmt.Errorf("converters: input has no tables")
	}
	if name == "" {
		return tables[0], nil
	}
	sanitized := common.GenTableNames([]string{name})[0]
	for _, t := range tables {
		if strings.EqualFold(t, name) || t == sanitized {
			return t, nil
		}
	}
	return "", fmt.Errorf("converters: table %q not found (have %s)", name, strings.Join(tables, ", "))
}
