// Package cli provides the interactive GophChat command-line client.
//
// It wires configuration, local storage, the session and chat controllers,
// and an interactive REPL. Typical flow: resume or prompt for credentials,
// start the background sync loop, and execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - List users with presence, list chats with unread counts
//   - Open a chat (marks incoming messages as seen)
//   - Send messages, optionally encrypted and self-destructing
//   - away / back to simulate foreground-background transitions
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
