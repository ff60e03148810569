// Package cli is the Together command-line client.
//
// App wires configuration, the local credential store, the REST client, the
// session manager and the area guard. Commands are exposed both as cobra
// subcommands (see NewRootCommand) and through an interactive shell that
// also watches connectivity and session changes.
//
// Areas are entered with "open <area>"; the guard decides whether the area
// renders, shows a placeholder, or redirects. A redirect replaces the current
// route in the navigation history.
package cli
