// Package gemini implements generation.Provider on top of Google's Gemini
// API through the google.golang.org/genai SDK.
//
// The provider asks for a JSON reply (ResponseMIMEType application/json)
// using the shared system prompt and hands the reply text to
// generation.ParseProposals. SDK errors are classified into the generation
// error kinds: HTTP errors from the API become ProviderUnavailable with the
// upstream status, deadline and network errors are flagged as timeouts, and
// replies blocked by safety filters or carrying no text are malformed.
package gemini
