package config

import (
	"time"

	"github.com/spf13/viper"
)

// Settings is the typed view over the environment shared by every service.
type Settings struct {
	Env      string
	LogLevel string

	APIPort    string
	AIPort     string
	SocketPort string

	FrontendURL string
	JWTSecret   string

	PostgresURL string
	MongoURI    string
	NatsURL     string
	NatsToken   string

	FlowAccessNode       string
	FlowNetwork          string
	LeagueFactoryAddress string
	StakingAddress       string
	SettlementAddress    string
	FlowTokenAddress     string
	FungibleTokenAddress string

	SignerAddress    string
	SignerKeyIndex   int
	SignerPrivateKey string
	SignerHashAlgo   string
	SettleTxPath     string

	AIServiceURL string
	GeminiAPIKey string
	GeminiModel  string

	LeagueCacheTTL     time.Duration
	APIRateLimit       int
	APIRateWindow      time.Duration
	ChainRateLimit     int
	ChainRateWindow    time.Duration
	SettlementInterval time.Duration
	SettlementPause    time.Duration
	PredictionTTL      time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("NODE_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "3001")
	v.SetDefault("AI_SERVICE_PORT", "5000")
	v.SetDefault("SOCKET_SERVICE_PORT", "3002")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("FLOW_ACCESS_NODE", "https://rest-testnet.onflow.org")
	v.SetDefault("FLOW_NETWORK", "testnet")
	v.SetDefault("FLOW_TOKEN_ADDRESS", "0x7e60df042a9c0868")
	v.SetDefault("FUNGIBLE_TOKEN_ADDRESS", "0x9a0766d93b6608b7")
	v.SetDefault("FLOW_SIGNER_KEY_INDEX", 0)
	v.SetDefault("FLOW_SIGNER_HASH", "SHA3_256")
	v.SetDefault("AI_SERVICE_URL", "http://localhost:5000")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("LEAGUE_CACHE_TTL", "2m")
	v.SetDefault("RATE_LIMIT", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("CHAIN_RATE_LIMIT", 5)
	v.SetDefault("CHAIN_RATE_WINDOW", "10s")
	v.SetDefault("SETTLEMENT_INTERVAL", "5m")
	v.SetDefault("SETTLEMENT_PAUSE", "2s")
	v.SetDefault("PREDICTION_TTL", "168h")
}

// Load reads the environment (after LoadEnv) into Settings.
func Load() Settings {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return Settings{
		Env:      v.GetString("NODE_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),

		APIPort:    v.GetString("PORT"),
		AIPort:     v.GetString("AI_SERVICE_PORT"),
		SocketPort: v.GetString("SOCKET_SERVICE_PORT"),

		FrontendURL: v.GetString("FRONTEND_URL"),
		JWTSecret:   v.GetString("JWT_SECRET_KEY"),

		PostgresURL: v.GetString("POSTGRES_URL"),
		MongoURI:    v.GetString("MONGODB_URI"),
		NatsURL:     v.GetString("NATS_URL"),
		NatsToken:   v.GetString("NATS_TOKEN"),

		FlowAccessNode:       v.GetString("FLOW_ACCESS_NODE"),
		FlowNetwork:          v.GetString("FLOW_NETWORK"),
		LeagueFactoryAddress: v.GetString("CONTRACT_LEAGUE_FACTORY"),
		StakingAddress:       v.GetString("CONTRACT_STAKING_MANAGER"),
		SettlementAddress:    v.GetString("CONTRACT_SETTLEMENT"),
		FlowTokenAddress:     v.GetString("FLOW_TOKEN_ADDRESS"),
		FungibleTokenAddress: v.GetString("FUNGIBLE_TOKEN_ADDRESS"),

		SignerAddress:    v.GetString("FLOW_SIGNER_ADDRESS"),
		SignerKeyIndex:   v.GetInt("FLOW_SIGNER_KEY_INDEX"),
		SignerPrivateKey: v.GetString("FLOW_SIGNER_PRIVATE_KEY"),
		SignerHashAlgo:   v.GetString("FLOW_SIGNER_HASH"),
		SettleTxPath:     v.GetString("SETTLE_TX_PATH"),

		AIServiceURL: v.GetString("AI_SERVICE_URL"),
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),

		LeagueCacheTTL:     v.GetDuration("LEAGUE_CACHE_TTL"),
		APIRateLimit:       v.GetInt("RATE_LIMIT"),
		APIRateWindow:      v.GetDuration("RATE_LIMIT_WINDOW"),
		ChainRateLimit:     v.GetInt("CHAIN_RATE_LIMIT"),
		ChainRateWindow:    v.GetDuration("CHAIN_RATE_WINDOW"),
		SettlementInterval: v.GetDuration("SETTLEMENT_INTERVAL"),
		SettlementPause:    v.GetDuration("SETTLEMENT_PAUSE"),
		PredictionTTL:      v.GetDuration("PREDICTION_TTL"),
	}
}
