package service

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
)

// MaxPlayers caps one page of the player list.
const MaxPlayers = 100

var (
	playerPositions = []string{"PG", "SG", "SF", "PF", "C"}
	playerTeams     = []string{"Lakers", "Warriors", "Celtics", "Heat"}
)

// DataService serves placeholder sports data until real providers are wired.
type DataService struct {
	rnd func(n int) int
}

func NewDataService() *DataService {
	return &DataService{rnd: rand.IntN}
}

func (s *DataService) Players(limit int) []models.Player {
	if limit <= 0 {
		limit = 10
	}
	if limit > MaxPlayers {
		limit = MaxPlayers
	}

	players := make([]models.Player, 0, limit)
	for i := 0; i < limit; i++ {
		players = append(players, models.Player{
			PlayerID: i + 1,
			Name:     fmt.Sprintf("Player %d", i+1),
			Position: playerPositions[i%len(playerPositions)],
			Team:     playerTeams[i%len(playerTeams)],
			Stats: models.PlayerStatLine{
				Points:   s.rnd(30) + 10,
				Rebounds: s.rnd(12) + 3,
				Assists:  s.rnd(10) + 2,
			},
			NftID:       i + 100,
			MarketValue: s.rnd(1000) + 50,
		})
	}
	return players
}

func (s *DataService) NFT(id int) models.NFT {
	return models.NFT{
		NftID:        id,
		Collection:   "NBA Top Shot",
		Name:         fmt.Sprintf("Moment #%d", id),
		Player:       "LeBron James",
		Play:         "Three-Pointer",
		Rarity:       "Legendary",
		SerialNumber: s.rnd(1000) + 1,
		MarketValue:  s.rnd(5000) + 100,
		ImageURL:     fmt.Sprintf("https://assets.nbatopshot.com/editions/%d/image.png", id),
	}
}

func (s *DataService) Performance(leagueId uint64) models.Performance {
	return models.Performance{
		LeagueID: leagueId,
		PerformanceData: map[int]float64{
			1: 85.5,
			2: 92.3,
			3: 78.1,
			4: 88.7,
			5: 95.2,
		},
		Timestamp: time.Now().UnixMilli(),
	}
}
