package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PredictionCollection = "predictions"

type Prediction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeagueID      uint64             `bson:"league_id" json:"leagueId"`
	PlayerAddress string             `bson:"player_address" json:"playerAddress"`
	Strategy      string             `bson:"strategy" json:"strategy"`
	Positions     map[string][]int   `bson:"positions" json:"positions"`
	ExpectedScore float64            `bson:"expected_score" json:"expectedScore"`
	Confidence    float64            `bson:"confidence" json:"confidence"`
	AIMethod      string             `bson:"ai_method" json:"aiMethod"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	ExpiresAt     time.Time          `bson:"expires_at" json:"-"`
}

// PredictionStore keeps lineup predictions until their TTL index expires them.
type PredictionStore struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewPredictionStore(db *mongo.Database, ttl time.Duration) *PredictionStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &PredictionStore{coll: db.Collection(PredictionCollection), ttl: ttl}
}

func (s *PredictionStore) Save(ctx context.Context, p *Prediction) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.ExpiresAt = p.CreatedAt.Add(s.ttl)

	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

// ByPlayer returns the newest predictions of an address first.
func (s *PredictionStore) ByPlayer(ctx context.Context, address string, limit int64) ([]*Prediction, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cur, err := s.coll.Find(ctx, bson.M{"player_address": address}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	predictions := []*Prediction{}
	if err := cur.All(ctx, &predictions); err != nil {
		return nil, err
	}
	return predictions, nil
}
