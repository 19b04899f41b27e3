package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spicysweet/internal/model"
)

// ArchivedSession is the permanent record written when a session is
// torn down; the live store record is deleted afterwards.
type ArchivedSession struct {
	Code       string                   `bson:"code"`
	Phase      model.Phase              `bson:"phase"`
	Players    map[string]*model.Player `bson:"players"`
	TeamScores map[model.Team]int       `bson:"teamScores"`
	Rounds     []model.RoundResult      `bson:"rounds"`
	CreatedAt  time.Time                `bson:"createdAt"`
	ArchivedAt time.Time                `bson:"archivedAt"`
}

// ArchiveRepo persists finished sessions for score history.
type ArchiveRepo interface {
	Archive(ctx context.Context, s *model.Session) error
	GetByCode(ctx context.Context, code string) (*ArchivedSession, error)
}

type archiveRepo struct {
	collection *mongo.Collection
}

func NewArchiveRepo(db *mongo.Database) ArchiveRepo {
	return &archiveRepo{
		collection: db.Collection("session_archive"),
	}
}

func (r *archiveRepo) Archive(ctx context.Context, s *model.Session) error {
	doc := &ArchivedSession{
		Code:       s.Code,
		Phase:      s.Phase,
		Players:    s.Players,
		TeamScores: s.TeamScores,
		Rounds:     s.Rounds,
		CreatedAt:  s.CreatedAt,
		ArchivedAt: time.Now().UTC(),
	}
	_, err := r.collection.ReplaceOne(ctx, map[string]interface{}{"code": s.Code}, doc, replaceUpsert())
	return err
}

func (r *archiveRepo) GetByCode(ctx context.Context, code string) (*ArchivedSession, error) {
	var doc ArchivedSession
	err := r.collection.FindOne(ctx, map[string]interface{}{"code": code}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func replaceUpsert() *options.ReplaceOptions {
	return options.Replace().SetUpsert(true)
}
