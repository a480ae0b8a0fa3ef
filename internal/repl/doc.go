// Package repl provides an interactive shell for calling DigiKey tools by
// hand. Each line names a tool followed by an optional JSON object of
// arguments:
//
//	digikey> keyword_search {"keywords": "LM358", "limit": 3}
//	digikey> generate_cart_url {"parts": [{"part_number": "296-8875-1-ND", "quantity": 10}]}
//
// Tool names complete with TAB and history persists between sessions.
package repl
