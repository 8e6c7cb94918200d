// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify emails the admin when a term is submitted and the submitter
// when it is approved or rejected. Without SMTP settings every notification
// is dropped.
package notify
