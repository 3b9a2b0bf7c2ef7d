package feed

import (
	"context"
	"sort"

	"github.com/H4ckEd666/Twitter-clone-app/internal/notifications"
	"github.com/H4ckEd666/Twitter-clone-app/internal/posts"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"

	"golang.org/x/sync/errgroup"
)

type FollowGraph interface {
	FollowingIDs(ctx context.Context, viewer string) ([]string, error)
}

type PostSource interface {
	ByAuthors(ctx context.Context, authors []string, page request.Page) ([]posts.Post, error)
}

type NotificationSource interface {
	ByActors(ctx context.Context, actors []string, page request.Page) ([]notifications.Notification, error)
}

type Service struct {
	graph FollowGraph
	posts PostSource
	notes NotificationSource
}

func NewService(graph FollowGraph, posts PostSource, notes NotificationSource) *Service {
	return &Service{graph: graph, posts: posts, notes: notes}
}

// Activity merges what the accounts viewer follows have posted and done.
// Both sources are paged independently with the same window, so a page
// holds up to twice the limit and is only approximately ordered across
// page boundaries.
func (s *Service) Activity(ctx context.Context, viewer string, page request.Page) ([]ActivityItem, error) {
	following, err := s.graph.FollowingIDs(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if len(following) == 0 {
		return []ActivityItem{}, nil
	}

	var (
		authored []posts.Post
		actions  []notifications.Notification
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authored, err = s.posts.ByAuthors(gctx, following, page)
		return err
	})
	g.Go(func() error {
		var err error
		actions, err = s.notes.ByActors(gctx, following, page)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(authored)+len(actions))
	for _, p := range authored {
		items = append(items, ActivityItem{
			ID:        p.ID,
			Type:      TypePost,
			From:      p.User,
			Post:      &notifications.PostRef{ID: p.ID, Text: p.Text, Img: p.Img},
			CreatedAt: p.CreatedAt,
		})
	}
	for _, n := range actions {
		items = append(items, ActivityItem{
			ID:          n.ID,
			Type:        string(n.Type),
			From:        n.From,
			Post:        n.Post,
			CommentText: n.CommentText,
			Message:     n.Message,
			CreatedAt:   n.CreatedAt,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
