// Package filesystem stores sessions, decks, notes and attachments as plain
// files under the root directory:
//
//	<root>/<session>/session.json
//	<root>/<session>/appunti.json
//	<root>/<session>/{images,documents,others}/<file>
//	<root>/<session>/flashcards/<deck>/data.json
//
// Directory names are the sanitized display names. Every mutation rewrites
// the whole JSON file; there is no locking and the last writer wins.
package filesystem
