// Package links builds DigiKey links that need no API credentials.
//
// BuildCartURL produces a FastAdd URL offline. MyListClient posts a bill of
// materials to the MyLists third-party import API and returns the single-use
// link DigiKey hands back. That endpoint sits behind bot mitigation, so an HTML
// block page is reported as a soft error on MyListLink instead of failing the call.
package links
