// Package gemini implements generation.Generator on Google's Gemini API.
//
// GeminiGenerator renders the reading prompt, calls the model through the
// genai client and retries transient failures with exponential backoff and
// jitter. Safety blocks and empty responses are permanent and returned
// immediately.
package gemini
