// package todoist is a thin client over the Todoist REST v2 API.
//
// The API offers no idempotency key, so task existence is approximated by
// exact content-string equality within a project, and section creation is
// made idempotent by listing before creating.
package todoist
