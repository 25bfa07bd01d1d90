// Package domain contains the core business entities and value types.
// It has no dependencies on other packages in this project.
package domain
