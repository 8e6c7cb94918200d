// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission runs the term suggestion form.

	Idle -> Composing -> Submitting -> Succeeded -> (2s) -> Idle
	                                 \-> Failed -> Composing (retry)

Submit returns ErrInFlight while a request is outstanding, so a form can never
have two submissions in flight. Failures are not retried automatically.
*/
package submission
