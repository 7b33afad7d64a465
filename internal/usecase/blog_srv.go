package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

// Raw HTML inside markdown is escaped, WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type BlogService interface {
	GetBlogs(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BlogResponse], error)
	GetBlog(ctx context.Context, id int64) (*response.BlogResponse, error)
	CreateBlog(ctx context.Context, req *request.BlogRequest) (*response.BlogResponse, error)
	UpdateBlog(ctx context.Context, req *request.BlogUpdateRequest) (*response.BlogResponse, error)
	DeleteBlog(ctx context.Context, id int64) error
}

type blogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBlogService(repo *repository.Repository, log *zap.Logger) BlogService {
	return &blogService{
		repo: repo,
		log:  log.With(zap.String("service", "blog")),
	}
}

func (s *blogService) GetBlogs(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BlogResponse], error) {
	blogs, err := s.repo.Blog.FindAll(ctx, req.PerPage(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	total, err := s.repo.Blog.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}

	data := make([]response.BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		data = append(data, s.toResponse(b))
	}

	return response.NewPaginatedResponse(data, req.Page, req.PerPage(), total), nil
}

func (s *blogService) GetBlog(ctx context.Context, id int64) (*response.BlogResponse, error) {
	blog, err := s.repo.Blog.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	if blog == nil {
		return nil, newError(ErrNotFound, "blog %d not found", id)
	}

	resp := s.toResponse(blog)
	return &resp, nil
}

func (s *blogService) CreateBlog(ctx context.Context, req *request.BlogRequest) (*response.BlogResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create blog validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	blog, err := toBlog(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Blog.Create(ctx, blog); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, newError(ErrAlreadyExists, "slug %s already exists", blog.Slug)
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}

	s.log.Info("Blog created", zap.Int64("blog_id", blog.ID), zap.String("slug", blog.Slug))
	resp := s.toResponse(blog)
	return &resp, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, req *request.BlogUpdateRequest) (*response.BlogResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update blog validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	blog, err := toBlog(&req.BlogRequest)
	if err != nil {
		return nil, err
	}
	blog.ID = req.ID

	if err := s.repo.Blog.Update(ctx, blog); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, newError(ErrNotFound, "blog %d not found", req.ID)
		case errors.Is(err, ErrAlreadyExists):
			return nil, newError(ErrAlreadyExists, "slug %s already exists", blog.Slug)
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}

	s.log.Info("Blog updated", zap.Int64("blog_id", req.ID))
	return s.GetBlog(ctx, req.ID)
}

func (s *blogService) DeleteBlog(ctx context.Context, id int64) error {
	if err := s.repo.Blog.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrNotFound, "blog %d not found", id)
		}
		return fmt.Errorf("delete blog: %w", err)
	}

	s.log.Info("Blog deleted", zap.Int64("blog_id", id))
	return nil
}

func (s *blogService) toResponse(b *entity.Blog) response.BlogResponse {
	html, err := renderMarkdown(b.Content)
	if err != nil {
		s.log.Warn("Failed to render blog markdown", zap.Error(err), zap.Int64("blog_id", b.ID))
	}
	return response.BlogToResponse(b, html)
}

func toBlog(req *request.BlogRequest) (*entity.Blog, error) {
	image, err := utils.DecodeImage(req.Image)
	if err != nil {
		return nil, newError(ErrInvalidInput, "image: %v", err)
	}

	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if slug == "" {
		return nil, newError(ErrValidation, "validation failed: slug: cannot be derived from title")
	}

	return &entity.Blog{
		Title:   strings.TrimSpace(req.Title),
		Slug:    slug,
		Excerpt: req.Excerpt,
		Content: req.Content,
		Image:   image,
		Author:  req.Author,
	}, nil
}

// renderMarkdown falls back to escaped text when conversion fails.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTMLEscapeString(src), err
	}
	return buf.String(), nil
}
