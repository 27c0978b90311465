// Package translate provides translation backends behind a common Provider
// interface: the Google Translate v2 REST API plus LLM-based providers
// (OpenAI and Gemini). It also carries the in-memory translation cache, a
// persistent SQLite translation memory, and a circuit breaker wrapper that
// turns a dead backend into a prompt terminal error.
package translate
