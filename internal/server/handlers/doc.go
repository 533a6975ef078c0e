// Package handlers contains the HTTP handlers of the postserve server:
// post pages, the RSS feed and health endpoints.
//
// Page failures render the HTML error page with a generic message; every
// other failure goes through the foundation/errors HTTP adapter. Neither
// path shows error details to the client.
package handlers
