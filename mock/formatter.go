package mock

import "github.com/fwojciec/pressdoc"

var _ pressdoc.ArticleFormatter = (*ArticleFormatter)(nil)

// ArticleFormatter is a mock implementation of pressdoc.ArticleFormatter.
type ArticleFormatter struct {
	FormatArticleFn func(a *pressdoc.Article) (string, error)
}

func (f *ArticleFormatter) FormatArticle(a *pressdoc.Article) (string, error) {
	return f.FormatArticleFn(a)
}
