// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog turns the loaded term list into the view that gets rendered.

# Filtering

Filter is pure and synchronous:

	view := catalog.Filter(terms, "all", "walk")
	if view.NoResults {
		// show catalog.NoResultsMessage
	}

The query is a case-insensitive substring match against the term name or its
analogy. With category "all" the result is grouped by the seven categories in
their fixed order; otherwise it is the single section for the selected
category.

Filtering a view's Terms again with the same inputs returns the same view.

# Debouncing

Re-filtering on every keystroke is the caller's choice, not the engine's.
Interactive callers wrap the trigger in a Debouncer:

	d := catalog.NewDebouncer(catalog.DefaultDebounce, func(q string) {
		render(catalog.Filter(terms, category, q))
	})
	d.Trigger(input)
*/
package catalog
