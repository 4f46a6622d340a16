package middleware

import "net/http"

// CORS allows browser clients on any origin to call the advisor API.
// Nothing in the corpus ships a working CORS layer to ground this on —
// the teacher's own router references a middleware.CORS that was never
// actually defined — so this is written directly against net/http.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
