// Package entry defines the unified catalog entry models for discovered
// elements. The three element types (skill, command, agent) share BaseEntry
// and diverge in typed fields; together they form a closed set of tagged
// variants discriminated by the element_type field. The package also
// provides model-level validation and JSON Schema validation for persisted
// catalog documents.
package entry
