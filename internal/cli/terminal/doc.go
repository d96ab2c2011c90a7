// Package terminal renders the session surfaces (region visibility,
// notices, navigation and the signup form) on a terminal.
package terminal
