// Package api holds the HTTP handlers and route table.
//
// /register and /login are public. The array routes sit behind
// middleware.Auth, so a request with a bad token is rejected before its
// body is read.
package api
