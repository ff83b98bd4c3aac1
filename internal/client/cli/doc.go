// Package cli provides the interactive storefront shell.
//
// It wires configuration, the local SQLite storage, the API client and the
// session, cart and catalogue services, then runs a line-oriented REPL.
// Startup restores the persisted session and loads the cart in the
// background, so the prompt is available immediately.
//
// Commands:
//   - help, whoami
//   - register, login, logout
//   - products [words...] [sort=price_asc|price_desc] [category=N] [page=N]
//   - product <id>
//   - cart, add <productId> [qty], update <id> <qty>, remove <id>
//   - clear (guest cart only)
//   - exit | quit
//
// update and remove take the server item id while logged in and the product
// id for a guest cart, which is what the cart listing shows in its first
// column.
package cli
