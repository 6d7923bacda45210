// Package sanitize removes personally identifying substrings from tab titles
// and URLs before they are sent to any LLM provider.
//
// Detection is an ordered list of regex rules, each replacing matches of one
// category (email, credit card, SSN, phone, IP address, generic account
// number) with a bracketed placeholder unique to that category. Specific
// digit shapes run before the generic account-number catch-all so a credit
// card never degrades into [ACCOUNT].
//
// URLs get a stricter policy than per-category replacement: the query string
// and fragment are dropped entirely and only origin plus sanitized path
// survive. Query redaction by sensitive parameter name is available
// separately via [Sanitizer.Query] for callers that must keep a query string.
//
// Built-in categories can be toggled at runtime and custom rules registered
// without modifying the built-ins. Sanitization is deterministic given the
// input and the active rule set; re-running it over already-sanitized text is
// a no-op because placeholders match no category.
package sanitize
