// Package driven defines outbound interfaces implemented by adapters.
// Services in the core depend on these, never on concrete adapters.
package driven
