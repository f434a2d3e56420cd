package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   pressdoc.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next pressdoc.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

func (s *LoggingArticleService) CreateArticle(ctx context.Context, article *pressdoc.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create article",
			"url", article.URL,
			"id", article.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateArticle(ctx, article)
}

func (s *LoggingArticleService) FindArticleByID(ctx context.Context, id string) (article *pressdoc.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticleByID(ctx, id)
}

func (s *LoggingArticleService) FindArticles(ctx context.Context, filter pressdoc.ArticleFilter) (articles []*pressdoc.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find articles",
			"offset", filter.Offset,
			"limit", filter.Limit,
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}

func (s *LoggingArticleService) DeleteArticle(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteArticle(ctx, id)
}
