// Package providers implements the Provider capability interface for each
// supported LLM backend.
//
// Hosted backends: Anthropic (Claude), OpenAI (GPT), Google (Gemini). The
// Local backend talks to a locally hosted server in either the
// OpenAI-compatible or the Ollama-native wire format.
//
// Providers are constructed from an explicit Config — no environment
// sniffing, no shared singletons — so connection tests can pass override
// configuration without mutating anything. HTTP clients are injected via a
// field so tests can redirect calls to local httptest servers.
//
// Errors carry the vendor status and message as typed values; none of the
// providers retries automatically — the caller decides what a failure means
// for the tab being processed.
//
// Use [New] to obtain a Provider by name.
package providers
