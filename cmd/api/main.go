package main

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/NitinS47/duk/internal/db"
	"github.com/NitinS47/duk/internal/platform/chat"
	"github.com/NitinS47/duk/internal/platform/config"
	phttp "github.com/NitinS47/duk/internal/platform/http"
	"github.com/NitinS47/duk/internal/platform/logger"
	"github.com/NitinS47/duk/internal/platform/notify"
	"github.com/NitinS47/duk/internal/platform/security"

	"github.com/NitinS47/duk/internal/modules/auth/domain"
	authhttp "github.com/NitinS47/duk/internal/modules/auth/http"
	pgrepo "github.com/NitinS47/duk/internal/modules/auth/infra/pg"
	chathttp "github.com/NitinS47/duk/internal/modules/chat/http"
	friendshttp "github.com/NitinS47/duk/internal/modules/friends/http"
)

const sweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Env)

	pool := db.MustOpen(cfg.PGDSN)
	defer pool.Close()

	accounts := pgrepo.NewAccountRepo(pool)
	pending := pgrepo.NewPendingRepo(pool)
	requests := pgrepo.NewFriendRequestRepo(pool)

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	stream, err := chat.NewStreamClient(cfg.StreamKey, cfg.StreamSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create stream client")
	}
	sessions := security.NewSessionManager(cfg.JWTSecret, cfg.SessionTTL)

	authModule := authhttp.New(authhttp.Deps{
		Accounts:    accounts,
		Pending:     pending,
		Sender:      mailer,
		Chat:        stream,
		Sessions:    sessions,
		FrontendURL: cfg.FrontendURL,
		Production:  cfg.Production(),
		Log:         log,
	})
	guard := authModule.Guard()
	friendsModule := friendshttp.New(friendshttp.Deps{
		Accounts: accounts,
		Requests: requests,
		Guard:    guard,
		Log:      log,
	})
	chatModule := chathttp.New(chathttp.Deps{Chat: stream, Guard: guard, Log: log})

	go sweepExpired(pending, log.With().Str("task", "pending_sweep").Logger())

	app := phttp.NewServer(phttp.Options{AppName: "duk-api"}, authModule, friendsModule, chatModule)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// sweepExpired reclaims dead pending registrations; lookups also purge
// lazily, so the sweep only bounds how long dead rows linger.
func sweepExpired(pending domain.PendingRepo, log zerolog.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for range t.C {
		n, err := pending.DeleteExpired()
		if err != nil {
			log.Warn().Err(err).Msg("sweep failed")
			continue
		}
		if n > 0 {
			log.Info().Int("reclaimed", n).Msg("expired pending registrations removed")
		}
	}
}
