package catalog

// ErrorCode classifies catalog failures.
type ErrorCode string

const (
	// ErrFetch is returned when the document cannot be retrieved.
	ErrFetch ErrorCode = "CatalogFetch"
	// ErrDecode is returned when the document is not valid catalog JSON.
	ErrDecode ErrorCode = "CatalogDecode"
	// ErrPackNotFound is returned by lookups for an unknown pack name.
	ErrPackNotFound ErrorCode = "PackNotFound"
	// ErrServerNotFound is returned by lookups for an unknown (name, pack) pair.
	ErrServerNotFound ErrorCode = "ServerNotFound"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// LoadErrorMessage is the banner text shown when the document fails to load.
const LoadErrorMessage = "Failed to load documentation data. Please try refreshing the page."
