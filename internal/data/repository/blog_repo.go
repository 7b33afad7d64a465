package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	FindByID(ctx context.Context, id int64) (*entity.Blog, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Blog, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, blog *entity.Blog) error
	Delete(ctx context.Context, id int64) error
}

type blogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBlogRepository(db database.PgxIface, log *zap.Logger) BlogRepository {
	return &blogRepository{
		db:  db,
		log: log.With(zap.String("repository", "blog")),
	}
}

const blogColumns = `id, title, slug, excerpt, content, image, author, created_at, updated_at`

func scanBlog(row pgx.Row, b *entity.Blog) error {
	return row.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.Image, &b.Author, &b.CreatedAt, &b.UpdatedAt)
}

func (r *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	query := `
		INSERT INTO blogs (title, slug, excerpt, content, image, author)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		blog.Title,
		blog.Slug,
		blog.Excerpt,
		blog.Content,
		blog.Image,
		blog.Author,
	).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)

	if err != nil {
		return r.wrapWriteError(err, "create blog", blog.Slug)
	}

	return nil
}

func (r *blogRepository) FindByID(ctx context.Context, id int64) (*entity.Blog, error) {
	var blog entity.Blog
	err := scanBlog(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id), &blog)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find blog", zap.Error(err), zap.Int64("blog_id", id))
		return nil, fmt.Errorf("find blog %d: %w", id, err)
	}
	return &blog, nil
}

func (r *blogRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list blogs", zap.Error(err))
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*entity.Blog
	for rows.Next() {
		var blog entity.Blog
		if err := scanBlog(rows, &blog); err != nil {
			return nil, fmt.Errorf("scan blog row: %w", err)
		}
		blogs = append(blogs, &blog)
	}

	return blogs, rows.Err()
}

func (r *blogRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		r.log.Error("Failed to count blogs", zap.Error(err))
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return total, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *entity.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, slug = $3, excerpt = $4, content = $5,
		    image = COALESCE($6, image), author = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Slug,
		blog.Excerpt,
		blog.Content,
		blog.Image,
		blog.Author,
	)
	if err != nil {
		return r.wrapWriteError(err, "update blog", blog.Slug)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("blog %d %w", blog.ID, ErrNotFound)
	}

	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete blog", zap.Error(err), zap.Int64("blog_id", id))
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("blog %d %w", id, ErrNotFound)
	}
	return nil
}

func (r *blogRepository) wrapWriteError(err error, op, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("blog slug %s %w", slug, ErrDuplicate)
	}
	r.log.Error("Failed to "+op, zap.Error(err), zap.String("slug", slug))
	return fmt.Errorf("%s %s: %w", op, slug, err)
}
