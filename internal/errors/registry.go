package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Unmatched batch end",
		Detail:   "BatchEnd was called without a matching BatchStart. Pending updates were flushed, but the call sites should be paired.",
		DocURL:   "https://isla.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Effect panicked",
		Detail:   "An effect body panicked. Outside an island boundary the panic propagates to whoever performed the triggering write.",
		DocURL:   "https://isla.dev/docs/errors/E002",
	},

	// ============================================
	// Hydration Errors (H001-H099)
	// ============================================

	"H001": {
		Category: CategoryHydration,
		Message:  "Island module not registered",
		Detail:   "No component is registered for the island's script URL. The island stays server-rendered and non-interactive.",
		DocURL:   "https://isla.dev/docs/errors/H001",
	},
	"H002": {
		Category: CategoryHydration,
		Message:  "Island state script not found",
		Detail:   "The island's state attribute references a sibling <script type=\"application/json\"> tag that is missing from the document.",
		DocURL:   "https://isla.dev/docs/errors/H002",
	},
	"H003": {
		Category: CategoryHydration,
		Message:  "Island state is not valid JSON",
		Detail:   "The island's serialized state failed to parse. Only this island enters the failed state; siblings hydrate normally.",
		DocURL:   "https://isla.dev/docs/errors/H003",
	},
	"H004": {
		Category: CategoryHydration,
		Message:  "Island component failed",
		Detail:   "The island's component returned an error or panicked while rebuilding its VNode tree from state.",
		DocURL:   "https://isla.dev/docs/errors/H004",
	},
	"H005": {
		Category: CategoryHydration,
		Message:  "Hydration walk failed",
		Detail:   "A panic occurred while walking the server DOM against the client tree. Bindings attached so far were disposed.",
		DocURL:   "https://isla.dev/docs/errors/H005",
	},
	"H006": {
		Category: CategoryHydration,
		Message:  "No state fetcher configured",
		Detail:   "The island uses url: state but the engine has no fetcher to load it with.",
		DocURL:   "https://isla.dev/docs/errors/H006",
	},

	// ============================================
	// Render Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryRender,
		Message:  "Island id is empty",
		Detail:   "Every island needs a page-unique id so the client can pair markup with its component.",
		DocURL:   "https://isla.dev/docs/errors/R001",
	},
	"R002": {
		Category: CategoryRender,
		Message:  "Duplicate island id",
		Detail:   "Two islands on the same page share an id. Hydration targets would be ambiguous.",
		DocURL:   "https://isla.dev/docs/errors/R002",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The configuration file does not exist at the given path.",
		DocURL:   "https://isla.dev/docs/errors/C001",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value has the wrong type or is out of range.",
		DocURL:   "https://isla.dev/docs/errors/C002",
	},
}

// Register adds a custom error template at runtime. Intended for
// applications extending the code space; isla's own codes are static.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
