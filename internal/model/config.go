package model

import "time"

type Config struct {
	StoreDriver   string
	MongoURI      string
	DBName        string
	SnapshotColl  string
	PostgresDSN   string
	ListenAddr    string
	Debug         bool
	UserAgent     string
	HTTPTimeout   time.Duration
	SelectorsFile string
	Browser       BrowserConfig
}

type BrowserConfig struct {
	// RemoteURL is the DevTools websocket of an already running Chrome.
	// Empty launches a local one.
	RemoteURL      string
	Headless       bool
	Stealth        bool
	ElementTimeout time.Duration
}
