// Package todo holds the task model, the pure list mutations, and the
// codec for the persisted task blob.
//
// A stored blob is a JSON array of task records:
//
//	[
//	  {"id": "1717171717171", "text": "Buy milk", "completed": false},
//	  {"id": "1717171717999", "text": "Call mom", "completed": true}
//	]
//
// # Mutations
//
// Add, Toggle, Delete and Edit never modify the collection they are given.
// Each returns the next collection and whether anything changed, so callers
// can keep earlier values around and compare them.
//
// # Validation
//
// The package supports two validation modes:
//
// 1. JSON Schema validation (ValidationOptions.Schema):
//   - The embedded tasks.schema.json (draft 2020-12) is applied first
//   - Wrong field types, missing fields and non-array roots are reported with paths like [0].text
//
// 2. Minimal fallback validation:
//   - The root must be an array that decodes into task records
//   - Every id must be non-empty
//
// Both modes reject blobs with duplicate ids.
package todo
