// Package auth provides request authentication as a halting middleware.
//
// Authenticators vote Yes, No, or Abstain on each request; an ordered
// Chain stops at the first non-abstaining vote. Middleware turns a
// chain into a server middleware that halts rejected requests with a
// fixed 401 before they reach routing. Concrete authenticators live in
// the apikey and jwt subpackages.
package auth
