// Package library holds the request-level operations on books and users:
// path/body id consistency, existence checks, ownership changes and their
// persistence. HTTP controllers translate the returned errors into statuses.
package library
