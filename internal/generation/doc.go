// Package generation defines the boundary between the application and the
// language model that writes chart readings. The Generator interface takes a
// computed chart and its matched patterns and returns prose; the Gemini
// implementation lives in platform/gemini.
package generation
