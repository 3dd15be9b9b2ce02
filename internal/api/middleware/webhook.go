package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
)

// HeaderWebhookSecret заголовок с разделяемым секретом вебхука заказов
const HeaderWebhookSecret = "X-Webhook-Secret"

// WebhookAuth middleware проверки разделяемого секрета вебхука
// Сравнение за постоянное время, чтобы не течь длиной совпавшего префикса
func WebhookAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderWebhookSecret)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				handlers.RespondError(w, http.StatusUnauthorized, "некорректный секрет вебхука")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
