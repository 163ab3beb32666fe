// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between browsers or
// scripted clients and the gift service.
//
// Two surfaces share the same session:
//
//   - PageHandler serves the server-rendered page and its form posts, using
//     the post/redirect/get pattern.
//   - GiftHandler serves the JSON API under /api.
package api
