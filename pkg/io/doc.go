// Package io provides utilities for input and output operations related to configuration management.
//
// Subpackages:
//   - config-manager: Configuration loading and management for the CLI
//   - marshaller: Serialization and deserialization in JSON and YAML
package io
