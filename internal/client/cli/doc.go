// Package cli provides the interactive users command-line client.
//
// It wires configuration, the local cache store, the remote API client and
// the users facade, then runs a REPL over standard input. Reads are answered
// from the local cache when it is fresh; writes follow the facade's rules.
//
// Key features:
//   - List users with paging, search and sorting
//   - Show, add, edit and delete a single user
//   - Inspect and restore locally deleted users
//   - Clear the cache and print its status
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
