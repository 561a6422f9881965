// Package server ties the pieces together: it accepts TCP connections,
// runs each on its own goroutine, and drives the per-request pipeline of
// decode, middleware chain, route lookup, static resolution, and encode.
//
// A Server is configured entirely before ListenAndServe: routes and
// middleware registered after traffic starts are not synchronized and
// must not be added concurrently with it. One request is served per
// connection; the connection is closed after the response is written.
package server
