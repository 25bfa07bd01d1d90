// Package driving defines the service interfaces consumed by inbound
// adapters such as the CLI.
package driving
