package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/Vovarama1992/magic_translator/internal/ports"
)

func NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
	}))
	return r
}

// RegisterRoutes mounts every endpoint. hRec may be nil when history is off.
func RegisterRoutes(
	r chi.Router,
	hPage *PageHandler,
	hTr *TranslateHandler,
	hRec *RecordHandler,
	hAuth *AuthHandler,
	authSvc ports.AuthService,
	ratePerMinute int,
) {
	r.Use(httputil.RecoverMiddleware)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/", hPage.Show)
	r.Get("/api/languages", hTr.Languages)

	// --- external calls, limited per IP ---
	r.Group(func(lr chi.Router) {
		if ratePerMinute > 0 {
			lr.Use(httprate.LimitByIP(ratePerMinute, time.Minute))
		}
		lr.Post("/", hPage.Submit)
		lr.Post("/api/translate", hTr.Translate)
		lr.Post("/api/translate/audio", hTr.TranslateAudio)
	})

	r.Post("/api/extract", hTr.Extract)

	if hRec == nil {
		return
	}

	// --- auth ---
	r.Post("/auth/login", hAuth.Login)

	// --- protected ---
	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(authSvc))
		pr.Get("/api/history", hRec.List)
		pr.Delete("/api/history", hRec.DeleteAll)
	})
}
