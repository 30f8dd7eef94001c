package models

type PlayerStatLine struct {
	Points   int `json:"points"`
	Rebounds int `json:"rebounds"`
	Assists  int `json:"assists"`
}

type Player struct {
	PlayerID    int            `json:"playerId"`
	Name        string         `json:"name"`
	Position    string         `json:"position"`
	Team        string         `json:"team"`
	Stats       PlayerStatLine `json:"stats"`
	NftID       int            `json:"nftId"`
	MarketValue int            `json:"marketValue"`
}

type NFT struct {
	NftID        int    `json:"nftId"`
	Collection   string `json:"collection"`
	Name         string `json:"name"`
	Player       string `json:"player"`
	Play         string `json:"play"`
	Rarity       string `json:"rarity"`
	SerialNumber int    `json:"serialNumber"`
	MarketValue  int    `json:"marketValue"`
	ImageURL     string `json:"imageUrl"`
}

type Performance struct {
	LeagueID        uint64          `json:"leagueId"`
	PerformanceData map[int]float64 `json:"performanceData"`
	Timestamp       int64           `json:"timestamp"`
}
