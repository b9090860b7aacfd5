package middleware

import (
	"net/http"

	"github.com/2beens/fitprogress/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every request; mutating ones are logged at debug level
// with the client address.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := log.Fields{
				"method": r.Method,
				"route":  routeTemplate(r),
				"ua":     r.Header.Get("User-Agent"),
			}

			if r.Method == http.MethodGet || r.Method == http.MethodOptions {
				log.WithFields(fields).Trace(" ====> request")
			} else {
				if ip, err := pkg.ReadUserIP(r); err == nil {
					fields["ip"] = ip
				}
				log.WithFields(fields).Debug(" ====> mutation")
			}

			next.ServeHTTP(w, r)
		})
	}
}
