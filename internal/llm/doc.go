// Package llm provides the language-model assistant that answers questions
// about an invoice batch. It supports OpenAI and Anthropic providers, with
// retry logic, rate limiting and reply caching.
package llm
