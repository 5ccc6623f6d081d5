package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCampaignNotFound = errors.New("campaign not found")
)

// ContentRepository exposes the posts and campaigns users can be connected
// to. Content CRUD itself lives elsewhere; this service only needs existence
// checks before it fans out connect notifications.
type ContentRepository interface {
	PostExists(ctx context.Context, postID string) (bool, error)
	CampaignExists(ctx context.Context, campaignID string) (bool, error)
	CreatePost(ctx context.Context, post models.Post) error
	CreateCampaign(ctx context.Context, campaign models.Campaign) error
}

// ContentRepo is a sqlx implementation of ContentRepository.
type ContentRepo struct {
	db *sqlx.DB
}

// NewContentRepo constructs a ContentRepo.
func NewContentRepo(db *sqlx.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

func (r *ContentRepo) PostExists(ctx context.Context, postID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id=$1)`, postID)
	return exists, err
}

func (r *ContentRepo) CampaignExists(ctx context.Context, campaignID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM campaigns WHERE id=$1)`, campaignID)
	return exists, err
}

func (r *ContentRepo) CreatePost(ctx context.Context, post models.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title) VALUES ($1, $2, $3)`,
		post.ID, post.AuthorID, post.Title)
	return err
}

func (r *ContentRepo) CreateCampaign(ctx context.Context, campaign models.Campaign) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, author_id, title) VALUES ($1, $2, $3)`,
		campaign.ID, campaign.AuthorID, campaign.Title)
	return err
}
