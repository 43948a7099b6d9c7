package core

// LogValue is an optional interface that types can implement to provide
// custom log representations. The default destructurer captures the
// returned value in place of the original one.
type LogValue interface {
	LogValue() any
}
