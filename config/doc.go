// Package config handles application configuration loading and validation.
//
// Configuration is loaded from pohoda.yml and validated using struct tags.
// It carries the organization the documents are exchanged for, the envelope
// application name, logging settings and export defaults.
package config
