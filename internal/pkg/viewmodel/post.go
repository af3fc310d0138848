package viewmodel

import (
	"github.com/ManuelReschke/Yatube/app/models"
)

// PostCard is a post with its resolved media addresses
type PostCard struct {
	models.Post
	ImageURL     string
	ThumbnailURL string
	CommentCount int64
}

// MediaResolver maps stored media keys to public URLs
type MediaResolver interface {
	URL(key string) string
	ThumbnailURL(key string) string
}

func NewPostCard(p models.Post, media MediaResolver) PostCard {
	card := PostCard{Post: p}
	if p.HasImage() && media != nil {
		card.ImageURL = media.URL(p.Image)
		card.ThumbnailURL = media.ThumbnailURL(p.Image)
	}
	return card
}

func NewPostCards(posts []models.Post, media MediaResolver) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, NewPostCard(p, media))
	}
	return cards
}
