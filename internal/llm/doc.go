// Package llm wraps the hosted chat-completion provider (Groq, OpenAI wire
// format) behind a single GenerateReply operation.
//
// The adapter owns prompt assembly: a fixed system prompt (behavioral rules
// plus the ShopEase knowledge document), at most the last N stored turns
// (default 10, older context silently dropped), and the new user message as
// the final turn. Requests use a fixed model, temperature, and token cap
// from configuration.
//
// Provider failures never escape raw: they are classified into sentinel
// errors (ErrNotConfigured, ErrAuth, ErrRateLimit, ErrEmptyResponse,
// ErrGeneric) whose messages are user-presentable, because the orchestrator
// uses them verbatim as fallback chat replies.
package llm
