// Package chatcompletion implements generation.Provider against any
// OpenAI-compatible chat-completions endpoint. OpenRouter and OpenAI are
// configured as presets of the same client; they differ only in base URL
// and in the attribution headers OpenRouter expects.
package chatcompletion
