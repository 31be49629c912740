package config

import "time"

// Application-wide constants organized by domain

// Files and paths
const (
	DefaultConfigPath      = "config.toml"
	DefaultPrivateKeysPath = "files/private_keys.txt"
	DefaultProxiesPath     = "files/proxies.txt"
	DefaultDatabasePath    = "data/db.sqlite3"
	DefaultLogPath         = "logs/logs.txt"
)

// Remote platform
const (
	GraphQLEndpoint = "https://api.hackquest.io/graphql"
	WebOrigin       = "https://www.hackquest.io"
	QuestPageURL    = WebOrigin + "/quest"
	ContentLanguage = "en"

	DefaultRequestsPerSecond = 5.0
	DefaultRequestTimeout    = 30 * time.Second
)

// Chain
const (
	SepoliaChainID     = 11155111
	SepoliaExplorerURL = "https://sepolia.etherscan.io"
	ReceiptTimeout     = 200 * time.Second
	GasMultiplier      = 1.25
)

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	StatsQueryTimeout   = 10 * time.Second
	SchemaInitTimeout   = 30 * time.Second
	ShutdownTimeout     = 10 * time.Second

	// Cache settings
	QuestionCountCacheSize = 4096
)

// Progression
const (
	MilestoneQuestThreshold = 20
	CoinQuestThreshold      = 2000
	PetFeedStep             = 5
)
