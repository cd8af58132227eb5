// Package auth provides API key authentication for the HTTP API.
package auth
