// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package search serves full-text term search.

When MEILI_URL is set, terms are indexed into the "baseball_terms" index and
the Service reads the catalog from there, narrowed by category and sorted by
position. Whenever Meilisearch is missing or unhealthy it reads the approved
terms from the database instead. Either way the query is matched by
catalog.Filter, so a search is a case-insensitive substring match in catalog
order.
*/
package search
