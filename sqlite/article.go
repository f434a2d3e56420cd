package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pressdoc"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ pressdoc.ArticleService = (*ArticleService)(nil)

// ArticleService implements pressdoc.ArticleService using SQLite.
// Body, tables and attachments are stored as JSON columns next to a plain
// text rendering of the article.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	var b [8]byte
	h := xxhash.Sum64(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

const articleColumns = "id, url, title, date, body, tables, attachments, content_hash, error, created_at"

// CreateArticle stores a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, a *pressdoc.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	content, err := a.ContentJSON()
	if err != nil {
		return err
	}
	body, err := json.Marshal(a.Body)
	if err != nil {
		return err
	}
	tables, err := marshalList(a.Tables)
	if err != nil {
		return err
	}
	attachments, err := marshalList(a.Attachments)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()
	hash := a.ContentHash
	if hash == "" {
		hash = hashContent(content)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, url, title, date, body, tables, attachments, content, content_hash, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, a.URL, a.Title, a.Date, string(body), tables, attachments,
		pressdoc.FormatArticleText(a), hash, a.Error, createdAt.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return pressdoc.Errorf(pressdoc.ECONFLICT, "article %s already exists", a.URL)
	} else if err != nil {
		return err
	}

	a.ID = id
	a.ContentHash = hash
	a.CreatedAt = createdAt
	return nil
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*pressdoc.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, pressdoc.Errorf(pressdoc.ENOTFOUND, "article not found")
	}
	return a, err
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter pressdoc.ArticleFilter) ([]*pressdoc.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*pressdoc.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pressdoc.Errorf(pressdoc.ENOTFOUND, "article not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*pressdoc.Article, error) {
	var a pressdoc.Article
	var body, tables, attachments, createdAt string

	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.Date, &body, &tables, &attachments,
		&a.ContentHash, &a.Error, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(body), &a.Body); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	if err := json.Unmarshal([]byte(tables), &a.Tables); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}
	if err := json.Unmarshal([]byte(attachments), &a.Attachments); err != nil {
		return nil, fmt.Errorf("failed to decode attachments: %w", err)
	}
	if len(a.Attachments) == 0 {
		a.Attachments = nil
	}

	var err error
	a.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// marshalList encodes a slice as JSON, writing nil as an empty array.
func marshalList[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	return string(data), err
}
