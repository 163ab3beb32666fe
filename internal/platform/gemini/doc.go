// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API for producing gift idea text.
//
// This package is an infrastructure adapter: it connects the gift finder to
// Google's external Gemini AI service without exposing the details of the
// external service to the rest of the application. It sends one prompt per
// call, makes a single attempt, and returns the concatenated text of the
// first candidate. Parsing that text is left to the generation package.
//
// The package depends on the google.golang.org/genai client library for
// authentication, request formatting and transport.
package gemini
