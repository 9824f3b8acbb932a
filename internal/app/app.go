package app

// Application wires the client together: config, logger, API client, session
// store, controllers, and the tab-refresh bus. One instance per process.
type Application struct {
	Config Config
	Logger *Logger
	Client *APIClient
	Store  SessionStore
	Auth   *AuthController
	Feed   *FeedController
	Status *StatusController
	Tabs   *TabRefreshBus
}

func NewApplication(cfg Config) (*Application, error) {
	logger := NewLogger(DefaultLogWriter(cfg.StorageRoot))
	client := NewAPIClient(cfg.APIBaseURL)

	var store SessionStore
	if st, err := NewSQLiteSessionStore(cfg.StorageRoot); err == nil {
		store = st
	} else {
		// Fall back to the JSON store when SQLite is unavailable.
		logger.Error("sqlite session store unavailable", map[string]interface{}{"error": err.Error()})
		store = NewFileSessionStore(cfg.StorageRoot)
	}

	push := NewDeviceTokenProvider(cfg.StorageRoot)
	auth := NewAuthController(client, store, push, logger)
	feed := NewFeedController(client, cfg.PageSize)
	status := NewStatusController(client, auth.Session)

	return &Application{
		Config: cfg,
		Logger: logger,
		Client: client,
		Store:  store,
		Auth:   auth,
		Feed:   feed,
		Status: status,
		Tabs:   NewTabRefreshBus(),
	}, nil
}
