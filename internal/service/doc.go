// Package service contains the application use cases. GiftService drives a
// visitor's session through the gift idea request cycle: it applies the
// domain transitions through the session store, builds the prompt, calls
// the language model and folds the parsed reply back into the session.
//
// Services receive their dependencies through constructor injection and
// depend only on ports (store.SessionStore, generation.Generator), never on
// concrete infrastructure.
package service
