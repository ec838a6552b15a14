// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, local storage, the API client, the session manager
// and the application services behind a read-eval-print loop. The session is
// restored in the background while the prompt is already usable; commands
// that need an account go through the route guard, which waits for the
// session, asks for a login when there is none, and then resumes the command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
