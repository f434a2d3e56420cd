package mock

import (
	"context"

	"github.com/fwojciec/pressdoc"
)

var _ pressdoc.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of pressdoc.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *pressdoc.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*pressdoc.Article, error)
	FindArticlesFn    func(ctx context.Context, filter pressdoc.ArticleFilter) ([]*pressdoc.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *pressdoc.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*pressdoc.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter pressdoc.ArticleFilter) ([]*pressdoc.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}

var _ pressdoc.ArticleParser = (*ArticleParser)(nil)

// ArticleParser is a mock implementation of pressdoc.ArticleParser.
type ArticleParser struct {
	ParseFn func(html string, url string) (*pressdoc.Article, error)
}

func (p *ArticleParser) Parse(html string, url string) (*pressdoc.Article, error) {
	return p.ParseFn(html, url)
}
