package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pressdoc"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var _ pressdoc.ArticleService = (*ArticleService)(nil)

// uniqueViolation is the SQLSTATE of a unique constraint violation.
const uniqueViolation = "23505"

// ArticleService implements pressdoc.ArticleService using PostgreSQL.
type ArticleService struct {
	db *sqlx.DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *sqlx.DB) *ArticleService {
	return &ArticleService{db: db}
}

type articleRow struct {
	ID          string    `db:"id"`
	URL         string    `db:"url"`
	Title       string    `db:"title"`
	Date        string    `db:"date"`
	Body        []byte    `db:"body"`
	Tables      []byte    `db:"tables"`
	Attachments []byte    `db:"attachments"`
	ContentHash string    `db:"content_hash"`
	Error       string    `db:"error"`
	CreatedAt   time.Time `db:"created_at"`
}

const articleColumns = "id, url, title, date, body, tables, attachments, content_hash, error, created_at"

func (r *articleRow) article() (*pressdoc.Article, error) {
	a := &pressdoc.Article{
		ID:          r.ID,
		URL:         r.URL,
		Title:       r.Title,
		Date:        r.Date,
		ContentHash: r.ContentHash,
		Error:       r.Error,
		CreatedAt:   r.CreatedAt,
	}
	if len(r.Body) > 0 {
		if err := json.Unmarshal(r.Body, &a.Body); err != nil {
			return nil, fmt.Errorf("failed to decode body: %w", err)
		}
	}
	a.Tables = []pressdoc.ArticleTable{}
	if len(r.Tables) > 0 {
		if err := json.Unmarshal(r.Tables, &a.Tables); err != nil {
			return nil, fmt.Errorf("failed to decode tables: %w", err)
		}
	}
	if len(r.Attachments) > 0 {
		if err := json.Unmarshal(r.Attachments, &a.Attachments); err != nil {
			return nil, fmt.Errorf("failed to decode attachments: %w", err)
		}
		if len(a.Attachments) == 0 {
			a.Attachments = nil
		}
	}
	return a, nil
}

// CreateArticle stores a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, a *pressdoc.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	content, err := a.ContentJSON()
	if err != nil {
		return err
	}
	// JSON columns are sent as text; lib/pq would encode []byte as bytea.
	var body any
	if a.Body != nil {
		data, err := json.Marshal(a.Body)
		if err != nil {
			return err
		}
		body = string(data)
	}
	tables, err := marshalList(a.Tables)
	if err != nil {
		return err
	}
	attachments, err := marshalList(a.Attachments)
	if err != nil {
		return err
	}

	hash := a.ContentHash
	if hash == "" {
		hash = fmt.Sprintf("%016x", xxhash.Sum64(content))
	}
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, url, title, date, body, tables, attachments, content, content_hash, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, id, a.URL, a.Title, a.Date, body, tables, attachments,
		pressdoc.FormatArticleText(a), hash, a.Error, createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return pressdoc.Errorf(pressdoc.ECONFLICT, "article %s already exists", a.URL)
		}
		return fmt.Errorf("failed to create article: %w", err)
	}

	a.ID = id
	a.ContentHash = hash
	a.CreatedAt = createdAt
	return nil
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*pressdoc.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pressdoc.Errorf(pressdoc.ENOTFOUND, "article not found")
	}

	var row articleRow
	err := s.db.GetContext(ctx, &row, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pressdoc.Errorf(pressdoc.ENOTFOUND, "article not found")
	} else if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return row.article()
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter pressdoc.ArticleFilter) ([]*pressdoc.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")
	if filter.ID != nil {
		if _, err := uuid.Parse(*filter.ID); err != nil {
			return []*pressdoc.Article{}, nil
		}
		args = append(args, *filter.ID)
		fmt.Fprintf(&query, " AND id = $%d", len(args))
	}
	if filter.URL != nil {
		args = append(args, *filter.URL)
		fmt.Fprintf(&query, " AND url = $%d", len(args))
	}
	query.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	var rows []articleRow
	if err := s.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to find articles: %w", err)
	}

	articles := make([]*pressdoc.Article, 0, len(rows))
	for i := range rows {
		a, err := rows[i].article()
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return pressdoc.Errorf(pressdoc.ENOTFOUND, "article not found")
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pressdoc.Errorf(pressdoc.ENOTFOUND, "article not found")
	}
	return nil
}

func marshalList[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	return string(data), err
}
