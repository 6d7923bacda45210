// Tabgroup is a CLI for AI-assisted browser tab grouping.
//
// It classifies tabs into named, colored groups using a configurable LLM
// provider (Anthropic, OpenAI, Gemini, or a local server), sanitizing tab
// titles and URLs before they leave the machine and keeping API keys
// encrypted at rest.
//
// Usage:
//
//	tabgroup status                       # show configuration status
//	tabgroup config set defaultProvider anthropic
//	tabgroup config set anthropicKey sk-ant-...
//	tabgroup test                         # validate credentials
//	tabgroup models                       # list available models
//	tabgroup group --tabs tabs.json       # group every tab in a snapshot
//	tabgroup group --tabs tabs.json --tab 3
//	tabgroup migrate                      # run the storage migration
//
// See https://github.com/dshills/tabgroup for full documentation.
package main
