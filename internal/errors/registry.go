package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Virtual tree errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryValidation,
		Message:  "Malformed virtual node",
	},
	"E002": {
		Category: CategoryValidation,
		Message:  "Unknown component",
		Detail:   "The document references a component that is not registered.",
	},

	// ============================================
	// Lifecycle errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryLifecycle,
		Message:  "Lifecycle hook failed",
	},
	"E011": {
		Category: CategoryLifecycle,
		Message:  "Component render panicked",
	},
	"E012": {
		Category: CategoryLifecycle,
		Message:  "State set on unmounted component",
		Detail:   "SetState was called after the component's WillUnmount ran.",
	},

	// ============================================
	// Host tree errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryHost,
		Message:  "Host tree operation failed",
	},
	"E021": {
		Category: CategoryHost,
		Message:  "Mount container missing",
		Detail:   "Mount needs a host node to render into.",
	},

	// ============================================
	// Document errors (E030-E039)
	// ============================================

	"E030": {
		Category: CategoryDocument,
		Message:  "Invalid tree document",
	},
	"E031": {
		Category: CategoryDocument,
		Message:  "Tree document could not be read",
	},

	// ============================================
	// Config errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid vtree.json",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
