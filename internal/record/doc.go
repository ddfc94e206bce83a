// Package record turns a scraped registration payload into enriched county rows.
//
// A payload is a JSON array of objects, one per county. Normalizer parses it into a
// Table, tags every row with its week, joins the FIPS and population lookups (inner
// joins: counties missing from either lookup are dropped), computes registrations
// per capita and fixes the output column order.
package record
