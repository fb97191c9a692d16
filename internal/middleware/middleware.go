package middleware

import (
	"net/http"
	"os"
	"strings"
)

// allowedOrigins is the CORS allow-list for the scan UI. SCAN_UI_ORIGINS
// (comma-separated) extends the local dev defaults.
func allowedOrigins() map[string]struct{} {
	allowed := map[string]struct{}{
		"http://localhost:5173": {},
		"http://localhost:8080": {},
	}
	for _, origin := range strings.Split(os.Getenv("SCAN_UI_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	return allowed
}

func CORSMiddleware(next http.Handler) http.Handler {
	allowed := allowedOrigins()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
