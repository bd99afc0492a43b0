package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/api"
	"github.com/natan-gtecnologia/admin-panel-sub000/api/scheduler"
	"github.com/natan-gtecnologia/admin-panel-sub000/cms"
	"github.com/natan-gtecnologia/admin-panel-sub000/config"
	"github.com/natan-gtecnologia/admin-panel-sub000/databases"
	"github.com/natan-gtecnologia/admin-panel-sub000/realtime"
)

// App stores the router, db connection and session manager, so it can be
// reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Manager   *realtime.Manager
	Scheduler *scheduler.Scheduler

	dbHelper     databases.DatabaseHelper
	bootstrapper *cms.Bootstrapper
	socket       *PanelSocket
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewModeratorDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := api.New()

	auditDB := databases.NewModerationEventDatabase(a.dbHelper)
	ls := LiveStream{
		Rooms: a.bootstrapper,
		Cache: gocache.New(30*time.Second, time.Minute),
	}
	session := LiveSession{
		Manager:  a.Manager,
		Audit:    auditDB,
		Validate: validator.New(),
	}
	st := SocketToken{Manager: a.Manager, JWTSecret: a.Config.JWTSecret}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/live-streams/{id}", api.Middleware(http.HandlerFunc(ls.LiveStreamHandler))).Methods("GET")

	apiCreate.Handle("/live-sessions/{uuid}", api.Middleware(http.HandlerFunc(session.OpenSessionHandler))).Methods("POST")
	apiCreate.Handle("/live-sessions/{uuid}", api.Middleware(http.HandlerFunc(session.SessionStatusHandler))).Methods("GET")
	apiCreate.Handle("/live-sessions/{uuid}", api.Middleware(http.HandlerFunc(session.CloseSessionHandler))).Methods("DELETE")
	apiCreate.Handle("/live-sessions/{uuid}/messages", api.Middleware(http.HandlerFunc(session.SessionMessagesHandler))).Methods("GET")
	apiCreate.Handle("/live-sessions/{uuid}/messages", api.Middleware(http.HandlerFunc(session.SendMessageHandler))).Methods("POST")
	apiCreate.Handle("/live-sessions/{uuid}/participants", api.Middleware(http.HandlerFunc(session.SessionParticipantsHandler))).Methods("GET")
	apiCreate.Handle("/live-sessions/{uuid}/participants/{participant_id}/block", api.Middleware(http.HandlerFunc(session.BlockParticipantHandler))).Methods("POST")
	apiCreate.Handle("/live-sessions/{uuid}/participants/{participant_id}/unblock", api.Middleware(http.HandlerFunc(session.UnblockParticipantHandler))).Methods("POST")
	apiCreate.Handle("/live-sessions/{uuid}/audit", api.Middleware(http.HandlerFunc(session.SessionAuditHandler))).Methods("GET")
	apiCreate.Handle("/live-sessions/{uuid}/socket-token", api.Middleware(http.HandlerFunc(st.SocketTokenHandler))).Methods("POST")

	if a.socket != nil {
		r.Handle("/socket.io/", a.socket.Server)
	}

	return r
}

// Initialize is invoked by main to connect with the database, wire the CMS
// client and session manager, and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("live-room moderation service has connected to the database")

	cmsClient := cms.NewClient(&a.Config, nil)
	a.bootstrapper = cms.NewBootstrapper(cmsClient)

	a.socket = InitializePanelSocket(a.Config.JWTSecret)

	audit := databases.AuditRecorder{DB: databases.NewModerationEventDatabase(a.dbHelper)}
	a.Manager = realtime.NewManager(
		a.Config.ChatSocketURL,
		a.bootstrapper,
		a.bootstrapper.LiveStreams,
		nil,
		audit,
		a.socket,
	)

	a.Scheduler = scheduler.NewScheduler(a.Manager)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
