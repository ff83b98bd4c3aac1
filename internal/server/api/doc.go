// Package api exposes the development server's REST endpoints:
//
//	POST   /auth/register
//	POST   /auth/login
//	GET    /auth/me               (bearer)
//	GET    /products
//	GET    /products/{id}
//	GET    /cart                  (bearer)
//	POST   /cart/items            (bearer)
//	PATCH  /cart/items/{itemId}   (bearer)
//	DELETE /cart/items/{itemId}   (bearer)
//
// Errors are JSON objects with a "message" field. Cart responses are
// {"items": [...], "total": n}.
package api
