package errcore

import _ "embed"

//go:embed catalogdata/errors.toml
var defaultCatalogData []byte

// DefaultCatalog is the builtin catalog, decoded once at package init from
// the embedded data file.
var DefaultCatalog *Catalog

func init() {
	cat, err := LoadCatalog(defaultCatalogData)
	if err != nil {
		panic("errcore: embedded default catalog failed to load: " + err.Error())
	}
	DefaultCatalog = cat
}

// NewDefaultRuntime builds a Runtime wired to DefaultCatalog, the common
// case for embedders that don't need a custom or hot-reloadable catalog.
func NewDefaultRuntime() *Runtime {
	return NewRuntime(DefaultCatalog)
}
