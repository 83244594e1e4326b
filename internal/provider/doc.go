// Package provider defines the answer provider contract, an ordered registry
// and the built-in adapters: Google AI (Gemini), DeepSeek, a local
// expression solver registered as SymPy, Wolfram Alpha and Stack Exchange.
//
// Adapters are opaque to the fan-out core. They return a text answer, an
// empty string, ErrNoAnswer, or an error; the core maps all of them to a
// uniform outcome.
package provider
