package core

// DestructuringPolicy decides whether it can convert a value, and how.
// Policies are consulted in registration order before the default
// destructurer; returning false must leave no trace.
type DestructuringPolicy interface {
	// TryDestructure returns the captured value and true when the policy
	// handles value. factory converts nested values and may re-enter the
	// policy.
	TryDestructure(value any, factory LogEventPropertyValueFactory) (LogEventPropertyValue, bool)
}
