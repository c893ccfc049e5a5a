package logger

// Standard field names for consistent structured logging across the
// generator core. Use these constants instead of raw strings.
const (
	// Sources
	FieldFile = "file"
	FieldURI  = "uri"
	FieldLine = "line"
	FieldCol  = "col"

	// Declarations
	FieldRule      = "rule"
	FieldInterface = "interface"
	FieldProperty  = "property"
	FieldTypeAlias = "type_alias"

	// Cache
	FieldCacheKey  = "cache_key"
	FieldCacheTier = "cache_tier"

	// Counts
	FieldInterfaces = "interfaces"
	FieldTypes      = "types"
	FieldWarnings   = "warnings"

	// Errors
	FieldError = "error"
)
