// Package client contains the remote and local collaborators of the users
// cache.
//
// # Overview
//
//  1. A transport-agnostic contract for the remote users API (see Client):
//     FetchUsers, FetchUser, CreateUser, PatchUser, DeleteUser.
//  2. A REST implementation on resty (see HTTPClient). List responses may be
//     a bare array or an object with a "users" field.
//  3. Storage bootstrap (OpenStorage, InitDatabase, RunMigrations) that
//     opens the configured key-value backend and applies embedded goose
//     migrations for the SQL ones.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx answers are
// *StatusError values whose Message is the body's "message" field or
// "Server error: <code>"; IsServerError and IsNotFound classify them.
package client
