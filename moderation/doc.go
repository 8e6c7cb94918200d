// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package moderation implements the admin review workflow.

A Controller belongs to one browser or terminal session. Login checks the key
by listing the pending queue and, on success, persists it in a
CredentialStore under CredentialKey. Restore picks it up again; Logout
clears it.

Approve and Reject always ask first (Confirmer, Prompter). A declined prompt
returns ErrCancelled without touching the backend. A successful action
reloads the whole queue; a failed one sets an alert and leaves the list as it
was.
*/
package moderation
