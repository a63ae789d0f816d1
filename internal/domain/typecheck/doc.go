// Package typecheck reconciles loosely typed tool-call payloads with their
// declared or inferred types. It infers expected types from field names,
// classifies mismatch patterns, coerces values where that is safe, and
// assembles validation reports. Every function is pure.
package typecheck
