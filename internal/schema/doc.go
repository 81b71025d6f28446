// Package schema compiles embedded JSON Schemas and validates JSON documents
// against them, flattening the validator's error tree into readable issues.
package schema
