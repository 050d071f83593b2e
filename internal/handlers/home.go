package handlers

import "net/http"

// Home identifies the service and points clients at the entry endpoints.
func Home(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]string{
		"name":   "IT Department Library Portal",
		"login":  "/login",
		"signup": "/register",
		"search": "/search",
	})
}

// About describes the collections the library offers.
func About(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]string{
		"department":  "Information Technology",
		"collections": "books, magazines, journals, CSP project files",
		"borrowing":   "books are issued for six months against a book code",
	})
}
