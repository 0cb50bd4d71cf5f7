package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	"E101": {
		Category: CategoryInit,
		Message:  "Store initializer failed",
		Detail:   "The initializer passed to CreateFunc returned an error. No store was constructed.",
	},
	"E102": {
		Category: CategoryUpdate,
		Message:  "Update function failed",
		Detail:   "The function passed to UpdateE returned an error. The stored value was left unchanged and no observer was notified.",
	},
	"E103": {
		Category: CategoryObserver,
		Message:  "Observer panicked during broadcast",
		Detail:   "An observer callback panicked while receiving a new value. Observer isolation is enabled, so delivery continued to the remaining observers.",
	},
	"E104": {
		Category: CategoryWait,
		Message:  "Wait for value canceled",
		Detail:   "The context was done before the store produced its first value.",
	},
	"E105": {
		Category: CategoryUsage,
		Message:  "Binding used without a view",
		Detail:   "Use must be called with the view that is currently rendering. Use Store.Get outside of views.",
	},
	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid benchmark option",
		Detail:   "A flag passed to globalstate-bench is out of range. Run the command with --help to see the accepted values.",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Command failed",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
